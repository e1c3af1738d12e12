package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// DocumentFormat identifies how uploaded bytes are turned into text.
// The format is resolved once from the filename at the upload boundary;
// everything downstream dispatches on the tag, never on the filename.
type DocumentFormat string

const (
	FormatPlainText   DocumentFormat = "plain_text"
	FormatPDF         DocumentFormat = "pdf"
	FormatWord        DocumentFormat = "word"
	FormatSpreadsheet DocumentFormat = "spreadsheet"
	FormatCSV         DocumentFormat = "csv"
	// FormatCode covers source code, markup, and config files. They are
	// decoded as plain UTF-8 with no structural parsing.
	FormatCode DocumentFormat = "code"
)

var formatByExtension = map[string]DocumentFormat{
	".txt":  FormatPlainText,
	".pdf":  FormatPDF,
	".docx": FormatWord,
	".xls":  FormatSpreadsheet,
	".xlsx": FormatSpreadsheet,
	".csv":  FormatCSV,
}

var codeExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx",
	".java", ".c", ".cpp", ".h", ".hpp",
	".cs", ".go", ".rb", ".php", ".swift",
	".kt", ".rs", ".pl", ".sh",
	".html", ".htm", ".css", ".scss", ".sass",
	".json", ".xml", ".yaml", ".yml", ".ini",
	".sql", ".dart", ".vue", ".md",
}

func init() {
	for _, ext := range codeExtensions {
		formatByExtension[ext] = FormatCode
	}
}

// FormatFromFilename resolves the document format from the filename extension.
// Returns a validation error for a missing extension and an unsupported-format
// error (listing the allowed extensions) for an unknown one.
func FormatFromFilename(filename string) (DocumentFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", ErrMissingFileExtension
	}

	format, ok := formatByExtension[ext]
	if !ok {
		return "", NewUnsupportedFormatError(ext, AllowedExtensions())
	}
	return format, nil
}

// AllowedExtensions returns all supported file extensions, sorted.
func AllowedExtensions() []string {
	exts := make([]string, 0, len(formatByExtension))
	for ext := range formatByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsValidFormat checks if a DocumentFormat is one of the supported tags.
func IsValidFormat(f DocumentFormat) bool {
	switch f {
	case FormatPlainText, FormatPDF, FormatWord, FormatSpreadsheet, FormatCSV, FormatCode:
		return true
	}
	return false
}
