// Package llm provides a minimal client for OpenAI-compatible chat
// completion endpoints. Requests always demand a JSON object response and
// DecodeLLMJSON tolerates the formatting quirks models still produce
// (code fences, prose around the payload).
package llm
