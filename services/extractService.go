package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

// ExtractText converts an uploaded payload into plain UTF-8 text. Plain text
// is decoded as-is; PDFs are extracted page by page with a newline after each
// page, matching how the documents read when concatenated.
func ExtractText(content []byte, mimeType string) (string, error) {
	switch mimeType {
	case ContentTypePDF:
		return extractPDFText(content)
	case ContentTypeText:
		if !utf8.Valid(content) {
			return "", fmt.Errorf("file is not valid UTF-8 text")
		}
		return string(content), nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", mimeType)
	}
}

func extractPDFText(content []byte) (text string, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read PDF page %d: %w", i, err)
		}

		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return strings.TrimSpace(sb.String()), nil
}
