package main

import (
	"strings"
	"testing"
	"time"

	"minutes/internal/extraction"
)

func TestItemsListAndSearch(t *testing.T) {
	env := setupCLITestEnv(t, "")
	seedTranscript(t, env.cfg)

	out, _, err := runCLI(t, []string{"items", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("items list: %v", err)
	}
	requireContains(t, out, "Book the venue")
	requireContains(t, out, "Draft the agenda")

	out, _, err = runCLI(t, []string{"items", "list", "venue"}, env.configPath)
	if err != nil {
		t.Fatalf("items list with query: %v", err)
	}
	requireContains(t, out, "Book the venue")
	if strings.Contains(out, "Draft the agenda") {
		t.Fatalf("expected filtered output, got %q", out)
	}
}

func TestItemsAddUpdateDoneRemove(t *testing.T) {
	env := setupCLITestEnv(t, "")
	transcript := seedTranscript(t, env.cfg)

	out, _, err := runCLI(t, []string{
		"items", "add", shortID(transcript.ID), "Send the follow-up notes",
		"--owner", "Riley", "--due", "2026-09-12", "--priority", "low", "--tag", "comms",
	}, env.configPath)
	if err != nil {
		t.Fatalf("items add: %v", err)
	}
	requireContains(t, out, "Added action item")
	requireContains(t, out, "Send the follow-up notes")
	requireContains(t, out, "Riley")
	requireContains(t, out, "2026-09-12")

	itemID := shortID(transcript.ActionItems[0].ID)

	out, _, err = runCLI(t, []string{
		"items", "update", itemID, "--clear-owner", "--priority", "medium",
	}, env.configPath)
	if err != nil {
		t.Fatalf("items update: %v", err)
	}
	requireContains(t, out, "Updated action item")
	requireContains(t, out, "Medium")

	out, _, err = runCLI(t, []string{"items", "done", itemID}, env.configPath)
	if err != nil {
		t.Fatalf("items done: %v", err)
	}
	requireContains(t, out, "done")

	out, _, err = runCLI(t, []string{"items", "rm", itemID}, env.configPath)
	if err != nil {
		t.Fatalf("items rm: %v", err)
	}
	requireContains(t, out, "Deleted action item")
}

func TestItemsUpdateRejectsConflictingFlags(t *testing.T) {
	env := setupCLITestEnv(t, "")
	transcript := seedTranscript(t, env.cfg)
	itemID := shortID(transcript.ActionItems[0].ID)

	_, _, err := runCLI(t, []string{
		"items", "update", itemID, "--owner", "Riley", "--clear-owner",
	}, env.configPath)
	if err == nil {
		t.Fatal("expected conflicting flag error")
	}
}

func TestParseDueDate(t *testing.T) {
	parsed, err := parseDueDate("2026-09-12")
	if err != nil {
		t.Fatalf("parse due date: %v", err)
	}
	expected := time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, parsed)
	}

	if _, err := parseDueDate("12/09/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestParsePriority(t *testing.T) {
	cases := map[string]extraction.Priority{
		"high":   extraction.PriorityHigh,
		"Medium": extraction.PriorityMedium,
		" low ":  extraction.PriorityLow,
	}
	for input, expected := range cases {
		got, err := parsePriority(input)
		if err != nil {
			t.Fatalf("parse priority %q: %v", input, err)
		}
		if got != expected {
			t.Fatalf("priority %q: expected %s, got %s", input, expected, got)
		}
	}

	if _, err := parsePriority("urgent"); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}
