// Package extract converts uploaded document bytes into plain UTF-8 text.
package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cloo-solutions/docqa/internal/domain"
)

// Extract produces plain text from raw bytes according to the resolved
// format tag. It has no side effects and mutates no shared state.
func Extract(format domain.DocumentFormat, filename string, data []byte) (string, error) {
	switch format {
	case domain.FormatPlainText, domain.FormatCode:
		return extractPlainText(filename, data)
	case domain.FormatPDF:
		return extractPDF(data)
	case domain.FormatWord:
		return extractDocx(data)
	case domain.FormatSpreadsheet:
		return extractSpreadsheet(data)
	case domain.FormatCSV:
		return extractCSV(data)
	default:
		return "", domain.NewUnsupportedFormatError(string(format), domain.AllowedExtensions())
	}
}

func extractPlainText(filename string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", domain.NewDecodeError(filename, fmt.Errorf("invalid UTF-8 byte sequence"))
	}
	// Strip a UTF-8 BOM if present; editors on Windows commonly add one.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	return string(data), nil
}

// serializeRows renders a row/column table as text, one row per line with
// tab-separated cells, preserving source row and column order.
func serializeRows(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}
