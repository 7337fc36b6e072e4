package extraction

import (
	"context"
	"errors"
	"testing"
	"time"
)

type scriptedClient struct {
	responses []scriptedResponse
	calls     int
}

type scriptedResponse struct {
	content string
	err     error
}

func (c *scriptedClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.calls >= len(c.responses) {
		return "", errors.New("unexpected extra call")
	}
	resp := c.responses[c.calls]
	c.calls++
	return resp.content, resp.err
}

func noSleep(context.Context, time.Duration) error { return nil }

const validResponse = `{"actionItems":[{"description":"Send the report","owner":"John","priority":"high","tags":["urgent"]}]}`

const testTranscript = "John will send the quarterly report by Friday."

func TestExtractSucceedsFirstAttempt(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{{content: validResponse}}}
	extractor := NewExtractor(client, WithSleeper(noSleep))

	items, err := extractor.Extract(context.Background(), testTranscript)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if client.calls != 1 {
		t.Fatalf("expected exactly 1 service call, got %d", client.calls)
	}
}

func TestExtractRecoversOnSecondAttempt(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{content: "not json at all"},
		{content: validResponse},
	}}
	var slept []time.Duration
	extractor := NewExtractor(client, WithSleeper(func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}))

	items, err := extractor.Extract(context.Background(), testTranscript)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if client.calls != 2 {
		t.Fatalf("expected exactly 2 service calls, got %d", client.calls)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected one 1s delay, got %v", slept)
	}
}

func TestExtractFailsAfterMaxAttempts(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{content: "garbage"},
		{content: "garbage"},
		{content: "garbage"},
	}}
	extractor := NewExtractor(client, WithSleeper(noSleep))

	_, err := extractor.Extract(context.Background(), testTranscript)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Failed to extract action items after 3 attempts" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
	if client.calls != 3 {
		t.Fatalf("expected exactly 3 service calls, got %d", client.calls)
	}

	var failed *ExtractionFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected ExtractionFailedError, got %T", err)
	}
	var parseErr *ParseError
	if !errors.As(failed.LastErr, &parseErr) {
		t.Fatalf("expected last error to be a ParseError, got %v", failed.LastErr)
	}
}

func TestExtractRetriesServiceErrors(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{err: errors.New("http 500")},
		{content: validResponse},
	}}
	extractor := NewExtractor(client, WithSleeper(noSleep))

	if _, err := extractor.Extract(context.Background(), testTranscript); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 service calls, got %d", client.calls)
	}
}

func TestExtractValidationShortCircuits(t *testing.T) {
	client := &scriptedClient{}
	extractor := NewExtractor(client, WithSleeper(noSleep))

	_, err := extractor.Extract(context.Background(), "short")
	if !errors.Is(err, ErrTranscriptTooShort) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("expected no service calls, got %d", client.calls)
	}
}

func TestExtractRespectsCancellation(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{content: "garbage"},
		{content: validResponse},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	extractor := NewExtractor(client, WithSleeper(func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}))

	_, err := extractor.Extract(ctx, testTranscript)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("expected 1 service call before cancellation, got %d", client.calls)
	}
}

func TestExtractCustomAttemptBound(t *testing.T) {
	client := &scriptedClient{responses: []scriptedResponse{
		{content: "garbage"},
		{content: "garbage"},
	}}
	extractor := NewExtractor(client, WithMaxAttempts(2), WithSleeper(noSleep))

	_, err := extractor.Extract(context.Background(), testTranscript)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Failed to extract action items after 2 attempts" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}
