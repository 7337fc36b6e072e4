package config

const (
	defaultDataDir               = "~/.local/share/minutes"
	defaultLogDir                = "~/.local/share/minutes/logs"
	defaultAPIBind               = "127.0.0.1:7920"
	defaultLLMBaseURL            = "https://api.groq.com/openai/v1/chat/completions"
	defaultLLMModel              = "llama-3.1-8b-instant"
	defaultLLMTimeoutSeconds     = 60
	defaultMaxAttempts           = 3
	defaultRetryDelaySeconds     = 1
	defaultMaxTranscripts        = 5
	defaultNotifyRequestTimeout  = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Extraction: Extraction{
			MaxAttempts:       defaultMaxAttempts,
			RetryDelaySeconds: defaultRetryDelaySeconds,
		},
		Retention: Retention{
			MaxTranscripts: defaultMaxTranscripts,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Extraction:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
