package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeDecode            = "DECODE_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeNoDocuments       = "NO_DOCUMENTS"
	ErrCodeEmbeddingService  = "EMBEDDING_SERVICE_ERROR"
	ErrCodeConfiguration     = "CONFIGURATION_ERROR"
	ErrCodeLLMBackend        = "LLM_BACKEND_ERROR"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuestion        = NewDomainError(ErrCodeValidation, "question is required")
	ErrEmptyFilename        = NewDomainError(ErrCodeValidation, "filename is required")
	ErrMissingFileExtension = NewDomainError(ErrCodeValidation, "file has no extension")
)

// Not found errors
var (
	ErrDocumentNotFound = NewDomainError(ErrCodeNotFound, "document not found")
	ErrNoDocuments      = NewDomainError(ErrCodeNoDocuments, "no documents uploaded")
)

// Store errors
var (
	ErrDocumentAlreadyExists = NewDomainError(ErrCodeInternalError, "document id already exists")
)

// Configuration errors
var (
	ErrLLMNotConfigured       = NewDomainError(ErrCodeConfiguration, "LLM backend is not configured: set DOCQA_OPENAI_API_KEY")
	ErrEmbeddingNotConfigured = NewDomainError(ErrCodeConfiguration, "embedding backend is not configured: set DOCQA_OPENAI_API_KEY")
)

// NewUnsupportedFormatError reports an unrecognized file extension together
// with the extensions the service accepts, so the caller can correct the upload.
func NewUnsupportedFormatError(ext string, allowed []string) *DomainError {
	return NewDomainError(ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format: %s (allowed: %s)", ext, joinExtensions(allowed)))
}

// NewDecodeError wraps a text decoding failure for a named file.
func NewDecodeError(filename string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeDecode,
		fmt.Sprintf("could not decode file %q as UTF-8 text", filename), err)
}

// NewEmbeddingServiceError wraps a failure from the embedding backend.
func NewEmbeddingServiceError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeEmbeddingService, "embedding service request failed", err)
}

// NewLLMBackendError wraps a failure from the chat-completion backend,
// preserving the backend's message for diagnostics.
func NewLLMBackendError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeLLMBackend, "LLM backend request failed", err)
}

func joinExtensions(exts []string) string {
	out := ""
	for i, ext := range exts {
		if i > 0 {
			out += ", "
		}
		out += ext
	}
	return out
}
