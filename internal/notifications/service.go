// Package notifications pushes processing events to an ntfy topic. When no
// topic is configured a noop implementation is returned so callers never
// branch on configuration.
package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"minutes/internal/config"
)

const userAgent = "Minutes/0.1.0"

// Service defines the notification surface exposed to the processor.
type Service interface {
	NotifyExtractionComplete(ctx context.Context, transcriptID string, itemCount int) error
	NotifyExtractionFailed(ctx context.Context, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		sendExtraction: cfg.Notifications.Extraction,
		sendErrors:     cfg.Notifications.Errors,
	}
}

// Noop returns a service that drops every notification.
func Noop() Service {
	return noopService{}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	sendExtraction bool
	sendErrors     bool
}

func (n *ntfyService) NotifyExtractionComplete(ctx context.Context, transcriptID string, itemCount int) error {
	if !n.sendExtraction {
		return nil
	}
	noun := "action items"
	if itemCount == 1 {
		noun = "action item"
	}
	data := payload{
		title:   "Minutes - Transcript Processed",
		message: fmt.Sprintf("Extracted %d %s (transcript %s)", itemCount, noun, transcriptID),
		tags:    []string{"minutes", "extraction", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExtractionFailed(ctx context.Context, reason string) error {
	if !n.sendErrors {
		return nil
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown"
	}
	data := payload{
		title:    "Minutes - Extraction Failed",
		message:  "Extraction failed: " + reason,
		tags:     []string{"minutes", "extraction", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Minutes - Test",
		message:  "Notification system test",
		tags:     []string{"minutes", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyExtractionComplete(context.Context, string, int) error { return nil }
func (noopService) NotifyExtractionFailed(context.Context, string) error        { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
