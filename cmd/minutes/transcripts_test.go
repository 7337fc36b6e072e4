package main

import (
	"encoding/json"
	"testing"

	"minutes/internal/api"
)

func TestTranscriptsListEmpty(t *testing.T) {
	env := setupCLITestEnv(t, "")

	out, _, err := runCLI(t, []string{"transcripts", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("transcripts list: %v", err)
	}
	requireContains(t, out, "No transcripts stored")
}

func TestTranscriptsShowByPrefix(t *testing.T) {
	env := setupCLITestEnv(t, "")
	transcript := seedTranscript(t, env.cfg)

	out, _, err := runCLI(t, []string{"transcripts", "show", shortID(transcript.ID)}, env.configPath)
	if err != nil {
		t.Fatalf("transcripts show: %v", err)
	}
	requireContains(t, out, transcript.ID)
	requireContains(t, out, "Book the venue")
	requireContains(t, out, "Draft the agenda")
}

func TestTranscriptsShowUnknownID(t *testing.T) {
	env := setupCLITestEnv(t, "")
	seedTranscript(t, env.cfg)

	_, _, err := runCLI(t, []string{"transcripts", "show", "no-such-transcript"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for unknown transcript id")
	}
}

func TestTranscriptsShowJSON(t *testing.T) {
	env := setupCLITestEnv(t, "")
	transcript := seedTranscript(t, env.cfg)

	out, _, err := runCLI(t, []string{"--json", "transcripts", "show", transcript.ID}, env.configPath)
	if err != nil {
		t.Fatalf("transcripts show: %v", err)
	}

	var payload api.TranscriptPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("parse transcript JSON: %v", err)
	}
	if payload.ID != transcript.ID {
		t.Fatalf("expected id %s, got %s", transcript.ID, payload.ID)
	}
	if len(payload.ActionItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(payload.ActionItems))
	}
}
