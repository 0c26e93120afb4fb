// Package recognize turns a scanned document buffer into raw text.
//
// Each backend handles one class of input (plain text dumps, PDFs with a
// text layer, raster images via Tesseract when built with the tesseract
// tag). Backends are tried in priority order; one declining with
// ErrUnavailable hands the buffer to the next.
package recognize

import (
	"context"
	"errors"
	"sort"

	"github.com/gabriel-vasile/mimetype"

	"boardingpass_parser/internal/scanerr"
)

// ErrUnavailable means the backend cannot handle this input class. The
// registry treats it as "try the next one", not a failure.
var ErrUnavailable = errors.New("recognizer unavailable for this input")

// Word is a recognised word with the backend's own confidence in [0, 1].
// Backends without per-word confidence report 1.0.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Result is the output of one recognition attempt.
type Result struct {
	Text    string `json:"text"`
	Words   []Word `json:"words,omitempty"`
	Backend string `json:"backend"`
}

// Recognizer extracts text from a document buffer. Implementations return
// ErrUnavailable when the detected MIME type or buffer contents are outside
// their input class.
type Recognizer interface {
	Name() string
	// Priority orders backends; higher runs first.
	Priority() int
	Recognize(ctx context.Context, data []byte, mimeType string) (*Result, error)
}

// Registry holds the configured backends, highest priority first.
type Registry struct {
	backends []Recognizer
}

// NewRegistry builds a registry from the given backends. Order of the
// arguments does not matter; Priority decides.
func NewRegistry(backends ...Recognizer) *Registry {
	sorted := make([]Recognizer, len(backends))
	copy(sorted, backends)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Registry{backends: sorted}
}

// Backends returns the backends in the order they will be tried.
func (r *Registry) Backends() []Recognizer {
	return r.backends
}

// DetectMIME sniffs the buffer's MIME type.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// Recognize sniffs the buffer's MIME type and runs backends in priority
// order until one produces text. When every backend declines or fails, the
// last real error is wrapped as OCR_FAILED.
func (r *Registry) Recognize(ctx context.Context, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, scanerr.New(scanerr.OCRFailed, "document", "")
	}
	mime := DetectMIME(data)

	var lastErr error
	for _, backend := range r.backends {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res, err := backend.Recognize(ctx, data, mime)
		if errors.Is(err, ErrUnavailable) {
			continue
		}
		if err != nil {
			lastErr = err
			continue
		}
		res.Backend = backend.Name()
		return res, nil
	}

	if lastErr != nil {
		return nil, scanerr.As(lastErr, "document")
	}
	return nil, scanerr.Newf(scanerr.OCRFailed, "document", "",
		"no recognizer accepted input type %s", mime)
}
