package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"minutes/internal/logging"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = time.Second
)

// CompletionClient is the outbound dependency of the extractor: one call,
// one raw JSON payload or an error.
type CompletionClient interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ExtractionFailedError is the terminal error after all attempts are
// exhausted. The message is user-facing; the last attempt's error stays
// reachable through Unwrap.
type ExtractionFailedError struct {
	Attempts int
	LastErr  error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("Failed to extract action items after %d attempts", e.Attempts)
}

func (e *ExtractionFailedError) Unwrap() error { return e.LastErr }

// Extractor runs the full extraction pipeline: validate, build prompts,
// then loop completion and schema validation across a bounded number of
// attempts with a fixed inter-attempt delay.
type Extractor struct {
	client      CompletionClient
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
	now         func() time.Time
	sleep       func(context.Context, time.Duration) error
}

// ExtractorOption customizes an Extractor.
type ExtractorOption func(*Extractor)

// WithMaxAttempts overrides the attempt bound (defaults to 3).
func WithMaxAttempts(attempts int) ExtractorOption {
	return func(e *Extractor) {
		if attempts > 0 {
			e.maxAttempts = attempts
		}
	}
}

// WithRetryDelay overrides the inter-attempt delay (defaults to 1s).
func WithRetryDelay(delay time.Duration) ExtractorOption {
	return func(e *Extractor) {
		if delay >= 0 {
			e.retryDelay = delay
		}
	}
}

// WithClock overrides the time source used for the prompt date anchor.
func WithClock(now func() time.Time) ExtractorOption {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSleeper overrides how inter-attempt delays are performed (useful for
// tests).
func WithSleeper(sleep func(context.Context, time.Duration) error) ExtractorOption {
	return func(e *Extractor) {
		if sleep != nil {
			e.sleep = sleep
		}
	}
}

// WithLogger attaches a logger for per-attempt diagnostics.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logging.NewComponentLogger(logger, "extraction")
		}
	}
}

// NewExtractor constructs an extractor around the supplied completion
// client.
func NewExtractor(client CompletionClient, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		client:      client,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      logging.NewNop(),
		now:         time.Now,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxAttempts reports the configured attempt bound.
func (e *Extractor) MaxAttempts() int { return e.maxAttempts }

// Extract validates text and runs bounded-retry extraction. Validation
// failures return immediately; service, parse, and schema failures are
// retried until the attempt bound, then collapse into ExtractionFailedError.
func (e *Extractor) Extract(ctx context.Context, text string) ([]ActionItemInput, error) {
	if err := ValidateTranscript(text); err != nil {
		return nil, err
	}
	if e.client == nil {
		return nil, errors.New("no completion client configured")
	}

	systemPrompt, userPrompt := BuildPrompts(text, e.now())

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		items, err := e.attempt(ctx, systemPrompt, userPrompt)
		if err == nil {
			return items, nil
		}
		lastErr = err
		e.logger.Warn("extraction attempt failed",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", e.maxAttempts),
			logging.Error(err))

		if attempt == e.maxAttempts {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := e.sleep(ctx, e.retryDelay); err != nil {
			return nil, err
		}
	}

	return nil, &ExtractionFailedError{Attempts: e.maxAttempts, LastErr: lastErr}
}

func (e *Extractor) attempt(ctx context.Context, systemPrompt, userPrompt string) ([]ActionItemInput, error) {
	content, err := e.client.CompleteJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	return ParseResponse(content)
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
