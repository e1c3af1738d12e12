package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cloo-solutions/docqa/internal/domain"
)

// extractPDF extracts text page by page, concatenating in page order.
// Pages with no extractable text contribute an empty string rather than
// failing the whole document.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeDecode, "could not parse PDF document", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Scanned or malformed pages yield nothing extractable.
			continue
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
