package config

import (
	"fmt"
	"net"
	"strings"
)

const (
	maxAttemptsCeiling    = 10
	retryDelayCeiling     = 60
	maxTranscriptsCeiling = 100
)

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateRetention(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return fmt.Errorf("paths.data_dir: must not be empty")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("paths.log_dir: must not be empty")
	}
	if c.Paths.APIBind != "" {
		if _, _, err := net.SplitHostPort(c.Paths.APIBind); err != nil {
			return fmt.Errorf("paths.api_bind: invalid host:port %q: %w", c.Paths.APIBind, err)
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("llm.base_url: must be an http(s) URL, got %q", c.LLM.BaseURL)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model: must not be empty")
	}
	return nil
}

func (c *Config) validateExtraction() error {
	if c.Extraction.MaxAttempts < 1 || c.Extraction.MaxAttempts > maxAttemptsCeiling {
		return fmt.Errorf("extraction.max_attempts: must be between 1 and %d, got %d", maxAttemptsCeiling, c.Extraction.MaxAttempts)
	}
	if c.Extraction.RetryDelaySeconds < 0 || c.Extraction.RetryDelaySeconds > retryDelayCeiling {
		return fmt.Errorf("extraction.retry_delay_seconds: must be between 0 and %d, got %d", retryDelayCeiling, c.Extraction.RetryDelaySeconds)
	}
	return nil
}

func (c *Config) validateRetention() error {
	if c.Retention.MaxTranscripts < 1 || c.Retention.MaxTranscripts > maxTranscriptsCeiling {
		return fmt.Errorf("retention.max_transcripts: must be between 1 and %d, got %d", maxTranscriptsCeiling, c.Retention.MaxTranscripts)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
