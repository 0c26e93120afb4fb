//go:build !tesseract

package recognize

import "context"

// Tesseract is a stand-in when the binary is built without the tesseract
// tag. It declines every input so the registry keeps a uniform shape.
type Tesseract struct{}

func NewTesseract(languages ...string) *Tesseract { return &Tesseract{} }

func (t *Tesseract) Name() string { return "tesseract" }

func (t *Tesseract) Priority() int { return 10 }

func (t *Tesseract) Recognize(_ context.Context, _ []byte, _ string) (*Result, error) {
	return nil, ErrUnavailable
}
