// Package extraction turns raw meeting transcripts into normalized action
// items. It validates input bounds, builds the model prompts, and drives a
// bounded-retry loop around the completion client and response schema
// validation.
package extraction
