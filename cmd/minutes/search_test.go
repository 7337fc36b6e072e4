package main

import "testing"

func TestSearchCommand(t *testing.T) {
	env := setupCLITestEnv(t, "")
	seedTranscript(t, env.cfg)

	out, _, err := runCLI(t, []string{"search", "venue"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "Book the venue")

	out, _, err = runCLI(t, []string{"search", "nonexistent"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "No action items match")
}
