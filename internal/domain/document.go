package domain

import (
	"fmt"
	"strings"
	"time"
)

// Document is an uploaded file after text extraction. Documents are immutable
// once stored; re-uploading produces a new document with a fresh id.
type Document struct {
	ID        string
	Filename  string
	Format    DocumentFormat
	RawText   string
	CreatedAt time.Time
}

// NewDocument creates a new Document instance
func NewDocument(id, filename string, format DocumentFormat, rawText string, createdAt time.Time) *Document {
	return &Document{
		ID:        id,
		Filename:  filename,
		Format:    format,
		RawText:   rawText,
		CreatedAt: createdAt,
	}
}

// ValidateDocument validates a Document instance
func ValidateDocument(d *Document) error {
	if d == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if d.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if d.Filename == "" {
		return fmt.Errorf("document Filename is required")
	}
	if strings.TrimSpace(d.RawText) == "" {
		return fmt.Errorf("document RawText is required")
	}
	if !IsValidFormat(d.Format) {
		return fmt.Errorf("document Format is invalid: %s", d.Format)
	}
	return nil
}

// RetrievedChunk is one ranked entry of a retrieval context: a chunk of text,
// its similarity score against the question, and the owning document.
type RetrievedChunk struct {
	DocumentID string
	Filename   string
	Text       string
	Score      float32
}
