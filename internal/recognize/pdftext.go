package recognize

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText reads the embedded text layer of a PDF, the common case for
// airline "print at home" passes. Scanned PDFs without a text layer are
// declined so a raster backend can take over.
type PDFText struct{}

func NewPDFText() *PDFText { return &PDFText{} }

func (p *PDFText) Name() string { return "pdftext" }

func (p *PDFText) Priority() int { return 50 }

func (p *PDFText) Recognize(_ context.Context, data []byte, mimeType string) (*Result, error) {
	if mimeType != "application/pdf" {
		return nil, ErrUnavailable
	}
	text, err := extractPDFText(data)
	if err != nil {
		return nil, fmt.Errorf("pdf text layer: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		// Image-only PDF; let an OCR backend try.
		return nil, ErrUnavailable
	}
	fields := strings.Fields(text)
	words := make([]Word, 0, len(fields))
	for _, f := range fields {
		words = append(words, Word{Text: f, Confidence: 1.0})
	}
	return &Result{Text: text, Words: words}, nil
}

// extractPDFText isolates the pdf library, which panics on some malformed
// inputs.
func extractPDFText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
