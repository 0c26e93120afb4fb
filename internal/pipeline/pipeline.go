// Package pipeline orchestrates one boarding-pass extraction end to end:
// recognition, token extraction, field validation, time resolution and the
// partial-failure envelope.
//
// Backends run in priority order and the first whose text yields every
// critical field wins. When none does, the richest partial result is kept
// and routed to manual review with a priority derived from what is missing.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/recognize"
	"boardingpass_parser/internal/scanerr"
	"boardingpass_parser/internal/validate"
)

// Mode selects how unresolved inputs are handled.
type Mode string

const (
	// Lenient accumulates errors and returns the best partial record.
	Lenient Mode = "lenient"
	// Strict fails on the first unresolved required input.
	Strict Mode = "strict"
)

// criticalWeight ranks review urgency: a missing critical field outweighs
// any number of missing optional ones.
const criticalWeight = 10

// optionalFields are the non-critical fields counted into review priority.
var optionalFields = []string{
	"flight_number", "airline", "confirmation", "gate", "terminal",
	"seat", "passenger_name", "arrival_time", "boarding_time",
}

// Options configure a Pipeline. The zero value is a lenient pipeline with
// the default word-confidence filter.
type Options struct {
	Mode            Mode
	FilterThreshold float64          // Per-word OCR confidence cutoff; 0 means the default.
	Now             func() time.Time // Injectable clock for date-range checks.
}

// Result is the outcome of one extraction. Success means every critical
// field resolved; a failed Result still carries the best partial record.
type Result struct {
	Success             bool                           `json:"success"`
	Record              *boardingpass.FlightRecordDraft `json:"record,omitempty"`
	Errors              scanerr.List                   `json:"errors,omitempty"`
	RequiresManualEntry []string                       `json:"requires_manual_entry,omitempty"`
	// ReviewPriority ranks failed extractions for the manual review queue;
	// higher means more urgent.
	ReviewPriority int `json:"review_priority,omitempty"`
}

// Pipeline runs extractions against a fixed set of recognizer backends.
type Pipeline struct {
	registry *recognize.Registry
	opts     Options
	log      *zap.Logger
}

func New(registry *recognize.Registry, opts Options, log *zap.Logger) *Pipeline {
	if opts.Mode == "" {
		opts.Mode = Lenient
	}
	if opts.FilterThreshold == 0 {
		opts.FilterThreshold = validate.FilterThreshold
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{registry: registry, opts: opts, log: log}
}

// Parse extracts a flight record from a raw document buffer, sniffing the
// MIME type from its contents. Backends are tried in priority order; the
// first one whose text resolves every critical field decides the result.
// Parse never panics and never returns an unstructured error: every failure
// is a typed entry in Result.Errors.
func (p *Pipeline) Parse(ctx context.Context, data []byte) Result {
	return p.ParseDocument(ctx, data, "")
}

// ParseDocument is Parse with a caller-declared MIME type, for transports
// that carry one alongside the document. An empty declaration falls back to
// content sniffing.
func (p *Pipeline) ParseDocument(ctx context.Context, data []byte, mimeType string) Result {
	if len(data) == 0 {
		return p.fail(scanerr.New(scanerr.OCRFailed, "document", ""))
	}
	mime := mimeType
	if mime == "" {
		mime = recognize.DetectMIME(data)
	}

	var best *Result
	var lastErr *scanerr.Error

	for _, backend := range p.registry.Backends() {
		if ctx.Err() != nil {
			return p.fail(scanerr.As(ctx.Err(), "document"))
		}
		rec, err := backend.Recognize(ctx, data, mime)
		if errors.Is(err, recognize.ErrUnavailable) {
			continue
		}
		if err != nil {
			lastErr = scanerr.As(err, "document")
			continue
		}

		res := p.ParseText(rec.Text, rec.Words)
		if res.Record != nil {
			res.Record.Meta.Backend = backend.Name()
		}
		if res.Success {
			p.log.Debug("extraction succeeded",
				zap.String("backend", backend.Name()),
				zap.Float64("confidence", res.Record.Meta.Confidence))
			return res
		}
		if best == nil || res.ReviewPriority < best.ReviewPriority {
			best = &res
		}
	}

	if best != nil {
		p.log.Info("extraction incomplete",
			zap.Strings("missing", best.RequiresManualEntry),
			zap.Int("review_priority", best.ReviewPriority))
		return *best
	}
	if lastErr == nil {
		lastErr = scanerr.New(scanerr.OCRFailed, "document", "")
	}
	return p.fail(lastErr)
}

// ParseText runs the extraction stages on already-recognised text. When
// per-word confidences are available the low-confidence words are filtered
// out first; if the filtered text loses critical fields the raw text is
// retried and the richer outcome kept.
func (p *Pipeline) ParseText(text string, words []recognize.Word) Result {
	res := p.resolve(text)
	if !hasScoredWords(words) {
		return res
	}

	scores := make([]validate.WordScore, 0, len(words))
	for _, w := range words {
		scores = append(scores, validate.WordScore{Word: w.Text, Confidence: w.Confidence})
	}
	cleaned := validate.FilterLowConfidence(scores, p.opts.FilterThreshold)
	if cleaned == "" || cleaned == text {
		return res
	}

	filtered := p.resolve(cleaned)
	if filtered.Success || filtered.ReviewPriority < res.ReviewPriority {
		return filtered
	}
	return res
}

func hasScoredWords(words []recognize.Word) bool {
	for _, w := range words {
		if w.Confidence < 1.0 {
			return true
		}
	}
	return false
}

// fail builds the total-failure envelope: nothing extracted, every critical
// field needs manual entry.
func (p *Pipeline) fail(err *scanerr.Error) Result {
	var errs scanerr.List
	errs.Add(err)
	return Result{
		Errors:              errs,
		RequiresManualEntry: boardingpass.CriticalFields,
		ReviewPriority:      reviewPriority(&boardingpass.FlightRecordDraft{}),
	}
}

// reviewPriority scores a draft for the manual review queue: each missing
// critical field weighs criticalWeight, each missing field of any kind adds
// one.
func reviewPriority(d *boardingpass.FlightRecordDraft) int {
	critical := len(d.MissingCriticalFields())
	total := critical
	for _, f := range optionalFields {
		if !hasOptionalField(d, f) {
			total++
		}
	}
	return criticalWeight*critical + total
}

func hasOptionalField(d *boardingpass.FlightRecordDraft, field string) bool {
	switch field {
	case "flight_number":
		return d.FlightNumber != ""
	case "airline":
		return d.Airline != ""
	case "confirmation":
		return d.Confirmation != ""
	case "gate":
		return d.Gate != ""
	case "terminal":
		return d.Terminal != ""
	case "seat":
		return d.Seat != ""
	case "passenger_name":
		return d.PassengerName != ""
	case "arrival_time":
		return d.Arrival != nil
	case "boarding_time":
		return d.Boarding != nil
	default:
		return true
	}
}
