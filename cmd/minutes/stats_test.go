package main

import (
	"encoding/json"
	"testing"

	"minutes/internal/api"
)

func TestStatsCommand(t *testing.T) {
	env := setupCLITestEnv(t, "")
	seedTranscript(t, env.cfg)

	out, _, err := runCLI(t, []string{"stats"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Transcripts")
	requireContains(t, out, "Action items")

	out, _, err = runCLI(t, []string{"--json", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("stats json: %v", err)
	}

	var payload api.StatsPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse stats JSON: %v", err)
	}
	if payload.TotalTranscripts != 1 {
		t.Fatalf("expected 1 transcript, got %d", payload.TotalTranscripts)
	}
	if payload.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", payload.TotalItems)
	}
	if payload.OpenItems != 2 {
		t.Fatalf("expected 2 open items, got %d", payload.OpenItems)
	}
	if payload.ByPriority["high"] != 1 {
		t.Fatalf("expected 1 high priority item, got %d", payload.ByPriority["high"])
	}
}
