package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minutes/internal/config"
	"minutes/internal/extraction"
	"minutes/internal/store"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a config file rooted in a temp directory and points
// the LLM base URL at llmBaseURL (the default stays when empty).
func setupCLITestEnv(t *testing.T, llmBaseURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	dataDir := filepath.Join(base, "data")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(homeDir, ".config", "minutes", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, dataDir, logDir, llmBaseURL)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path, dataDir, logDir, llmBaseURL string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndata_dir = %q\nlog_dir = %q\n\n[llm]\napi_key = %q\n",
		dataDir, logDir, "test-key",
	)
	if llmBaseURL != "" {
		content += fmt.Sprintf("base_url = %q\n", llmBaseURL)
	}
	content += "\n[extraction]\nretry_delay_seconds = 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// seedTranscript stores one transcript with two action items directly through
// the store, bypassing extraction.
func seedTranscript(t *testing.T, cfg *config.Config) *store.Transcript {
	t.Helper()
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	owner := "Dana"
	items := []extraction.ActionItemInput{
		{Description: "Book the venue", Owner: &owner, Priority: extraction.PriorityHigh, Tags: []string{"logistics"}},
		{Description: "Draft the agenda", Priority: extraction.PriorityMedium},
	}
	transcript, err := st.CreateTranscriptWithItems(context.Background(),
		"Team sync covering venue booking and agenda drafting for the offsite.",
		items, "llama-3.1-8b-instant")
	if err != nil {
		t.Fatalf("seed transcript: %v", err)
	}
	return transcript
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
