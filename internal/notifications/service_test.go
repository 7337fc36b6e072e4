package notifications

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"minutes/internal/config"
)

func TestNewServiceReturnsNoopWithoutTopic(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := NewService(&cfg)
	if _, ok := svc.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", svc)
	}
	if err := svc.NotifyExtractionComplete(context.Background(), "id", 3); err != nil {
		t.Fatalf("noop notify failed: %v", err)
	}
}

func TestNtfyServiceSendsHeaders(t *testing.T) {
	var gotTitle, gotTags, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.Header.Get("Title")
		gotTags = r.Header.Get("Tags")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := NewService(&cfg)

	if err := svc.NotifyExtractionComplete(context.Background(), "abc123", 3); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if gotTitle != "Minutes - Transcript Processed" {
		t.Fatalf("unexpected title: %q", gotTitle)
	}
	if !strings.Contains(gotTags, "extraction") {
		t.Fatalf("unexpected tags: %q", gotTags)
	}
	if !strings.Contains(gotBody, "3 action items") || !strings.Contains(gotBody, "abc123") {
		t.Fatalf("unexpected body: %q", gotBody)
	}
}

func TestNtfyServiceRespectsEventToggles(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Extraction = false
	cfg.Notifications.Errors = false
	svc := NewService(&cfg)

	if err := svc.NotifyExtractionComplete(context.Background(), "id", 1); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if err := svc.NotifyExtractionFailed(context.Background(), "boom"); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no requests with events disabled, got %d", calls)
	}
}

func TestNtfyServiceSurfacesHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := NewService(&cfg)

	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status in error, got %v", err)
	}
}
