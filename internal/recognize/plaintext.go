package recognize

import (
	"context"
	"strings"
	"unicode/utf8"
)

// PlainText accepts text/plain inputs, for pre-extracted scans and tests.
// It reports full confidence per word since no OCR ran.
type PlainText struct{}

func NewPlainText() *PlainText { return &PlainText{} }

func (p *PlainText) Name() string { return "plaintext" }

// Highest priority: if the buffer already is text there is nothing to OCR.
func (p *PlainText) Priority() int { return 100 }

func (p *PlainText) Recognize(_ context.Context, data []byte, mimeType string) (*Result, error) {
	if !strings.HasPrefix(mimeType, "text/plain") || !utf8.Valid(data) {
		return nil, ErrUnavailable
	}
	text := string(data)
	fields := strings.Fields(text)
	words := make([]Word, 0, len(fields))
	for _, f := range fields {
		words = append(words, Word{Text: f, Confidence: 1.0})
	}
	return &Result{Text: text, Words: words}, nil
}
