package main

import (
	"log/slog"

	"minutes/internal/config"
	"minutes/internal/extraction"
	"minutes/internal/logging"
	"minutes/internal/notifications"
	"minutes/internal/processor"
	"minutes/internal/services/llm"
	"minutes/internal/store"
)

// buildLLMClient returns nil when no API key is configured; the daemon then
// serves reads but rejects processing until a key is provided.
func buildLLMClient(cfg *config.Config, logger *slog.Logger) *llm.Client {
	settings := cfg.GetLLM()
	if settings.APIKey == "" {
		logger.Warn("no LLM API key configured; transcript processing disabled",
			logging.String(logging.FieldComponent, "bootstrap"))
		return nil
	}
	return llm.NewClient(llm.Config{
		APIKey:         settings.APIKey,
		BaseURL:        settings.BaseURL,
		Model:          settings.Model,
		Referer:        settings.Referer,
		Title:          settings.Title,
		TimeoutSeconds: settings.TimeoutSeconds,
	})
}

func buildProcessor(cfg *config.Config, st *store.Store, client *llm.Client, logger *slog.Logger) *processor.Processor {
	model := cfg.GetLLM().Model
	var completions extraction.CompletionClient
	if client != nil {
		completions = client
		model = client.Model()
	}

	extractor := extraction.NewExtractor(completions,
		extraction.WithMaxAttempts(cfg.Extraction.MaxAttempts),
		extraction.WithRetryDelay(cfg.Extraction.RetryDelay()),
		extraction.WithLogger(logger),
	)

	return processor.New(extractor, st, model,
		processor.WithLogger(logger),
		processor.WithNotifier(notifications.NewService(cfg)),
		processor.WithRetentionCap(cfg.Retention.MaxTranscripts),
	)
}
