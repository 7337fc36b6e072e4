// Package processor runs the end-to-end transcript pipeline: extraction,
// atomic persistence, best-effort retention, and notifications. Every
// failure is converted into a caller-facing Result; nothing escapes as a
// raw error.
package processor

import (
	"context"
	"log/slog"

	"minutes/internal/extraction"
	"minutes/internal/logging"
	"minutes/internal/notifications"
	"minutes/internal/store"
)

// Extractor is the pipeline's extraction dependency.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]extraction.ActionItemInput, error)
}

// Result is the uniform outcome of one transcript submission.
type Result struct {
	Success    bool
	Transcript *store.Transcript
	Error      string
}

// Processor coordinates one submission from raw text to stored transcript.
type Processor struct {
	extractor    Extractor
	store        *store.Store
	notifier     notifications.Service
	logger       *slog.Logger
	model        string
	retentionCap int
}

// Option customizes a Processor.
type Option func(*Processor)

// WithLogger attaches a logger for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "processor")
		}
	}
}

// WithNotifier attaches a notification service.
func WithNotifier(notifier notifications.Service) Option {
	return func(p *Processor) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

// WithRetentionCap overrides the stored-transcript cap (defaults to 5).
func WithRetentionCap(cap int) Option {
	return func(p *Processor) {
		if cap > 0 {
			p.retentionCap = cap
		}
	}
}

// New constructs a processor. The model identifier is recorded in each
// stored transcript's metadata.
func New(extractor Extractor, st *store.Store, model string, opts ...Option) *Processor {
	p := &Processor{
		extractor:    extractor,
		store:        st,
		notifier:     notifications.Noop(),
		logger:       logging.NewNop(),
		model:        model,
		retentionCap: 5,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full pipeline for one transcript submission.
func (p *Processor) Process(ctx context.Context, text string) Result {
	items, err := p.extractor.Extract(ctx, text)
	if err != nil {
		p.logger.Warn("extraction failed", logging.Error(err))
		if notifyErr := p.notifier.NotifyExtractionFailed(ctx, err.Error()); notifyErr != nil {
			p.logger.Warn("notify extraction failure", logging.Error(notifyErr))
		}
		return Result{Error: err.Error()}
	}

	transcript, err := p.store.CreateTranscriptWithItems(ctx, text, items, p.model)
	if err != nil {
		p.logger.Error("persist transcript", logging.Error(err))
		return Result{Error: "Failed to save transcript: " + err.Error()}
	}

	// Retention is best effort: the committed transcript stands even if
	// cleanup fails.
	deleted, err := p.store.EnforceRetention(ctx, p.retentionCap)
	if err != nil {
		p.logger.Warn("retention enforcement failed", logging.Error(err))
	} else if len(deleted) > 0 {
		p.logger.Info("retention pruned transcripts",
			logging.Int("deleted", len(deleted)),
			logging.Int("cap", p.retentionCap))
	}

	p.logger.Info("transcript processed",
		logging.String("transcript_id", transcript.ID),
		logging.Int("items", len(transcript.ActionItems)),
		logging.Int("word_count", transcript.WordCount))

	if notifyErr := p.notifier.NotifyExtractionComplete(ctx, transcript.ID, len(transcript.ActionItems)); notifyErr != nil {
		p.logger.Warn("notify extraction complete", logging.Error(notifyErr))
	}

	return Result{Success: true, Transcript: transcript}
}
