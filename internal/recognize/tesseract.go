//go:build tesseract

package recognize

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs real OCR on raster images via libtesseract. It needs cgo
// and the tesseract/leptonica system libraries, so it sits behind the
// tesseract build tag.
type Tesseract struct {
	clientFactory func() *gosseract.Client
	languages     []string
}

func NewTesseract(languages ...string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Tesseract{clientFactory: gosseract.NewClient, languages: languages}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Lowest priority: OCR is the fallback when no text layer exists.
func (t *Tesseract) Priority() int { return 10 }

func (t *Tesseract) Recognize(ctx context.Context, data []byte, mimeType string) (*Result, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrUnavailable
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if err := c.SetLanguage(t.languages...); err != nil {
		return nil, fmt.Errorf("set languages: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrUnavailable
	}

	return &Result{Text: text, Words: tesseractWords(c)}, nil
}

// tesseractWords pulls per-word confidences off the client after Text ran.
// Tesseract reports confidence in percent.
func tesseractWords(c *gosseract.Client) []Word {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil
	}
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{Text: b.Word, Confidence: b.Confidence / 100.0})
	}
	return words
}
