// Package api defines the JSON wire types served by the daemon's HTTP API
// and the conversions from stored records.
package api

import "encoding/json"

// ActionItemPayload is the wire form of one action item.
type ActionItemPayload struct {
	ID           string   `json:"id"`
	TranscriptID string   `json:"transcriptId"`
	Description  string   `json:"description"`
	Owner        *string  `json:"owner"`
	DueDate      *string  `json:"dueDate"`
	Priority     string   `json:"priority"`
	Tags         []string `json:"tags"`
	IsDone       bool     `json:"isDone"`
	CreatedAt    string   `json:"createdAt"`
}

// TranscriptMetadata mirrors the derived metadata frozen at creation.
type TranscriptMetadata struct {
	WordCount int    `json:"wordCount"`
	ItemCount int    `json:"itemCount"`
	ModelUsed string `json:"modelUsed"`
}

// TranscriptPayload is the wire form of one stored transcript.
type TranscriptPayload struct {
	ID          string              `json:"id"`
	RawText     string              `json:"rawText"`
	ProcessedAt string              `json:"processedAt"`
	Metadata    TranscriptMetadata  `json:"metadata"`
	ActionItems []ActionItemPayload `json:"actionItems"`
}

// ProcessRequest is the body of POST /api/transcripts.
type ProcessRequest struct {
	Text string `json:"text"`
}

// ProcessResponse is the uniform result of a transcript submission.
type ProcessResponse struct {
	Success    bool               `json:"success"`
	Transcript *TranscriptPayload `json:"transcript,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// TranscriptListResponse wraps GET /api/transcripts.
type TranscriptListResponse struct {
	Transcripts []TranscriptPayload `json:"transcripts"`
}

// ItemListResponse wraps GET /api/items.
type ItemListResponse struct {
	Items []ActionItemPayload `json:"items"`
}

// ItemResponse wraps single-item mutations.
type ItemResponse struct {
	Success bool               `json:"success"`
	Item    *ActionItemPayload `json:"actionItem,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// CreateItemRequest is the body of POST /api/items.
type CreateItemRequest struct {
	TranscriptID string   `json:"transcriptId"`
	Description  string   `json:"description"`
	Owner        *string  `json:"owner"`
	DueDate      *string  `json:"dueDate"`
	Priority     string   `json:"priority"`
	Tags         []string `json:"tags"`
}

// UpdateItemRequest is the body of PATCH /api/items/{id}. Nullable fields
// use raw JSON so an explicit null (clear) is distinguishable from an
// absent key (leave untouched).
type UpdateItemRequest struct {
	Description *string         `json:"description"`
	Owner       json.RawMessage `json:"owner"`
	DueDate     json.RawMessage `json:"dueDate"`
	Priority    *string         `json:"priority"`
	Tags        *[]string       `json:"tags"`
}

// StatsPayload wraps GET /api/stats.
type StatsPayload struct {
	TotalTranscripts int               `json:"totalTranscripts"`
	TotalItems       int               `json:"totalItems"`
	DoneItems        int               `json:"doneItems"`
	OpenItems        int               `json:"openItems"`
	ByPriority       map[string]int    `json:"byPriority"`
	ItemsWithOwner   int               `json:"itemsWithOwner"`
	ItemsWithDueDate int               `json:"itemsWithDueDate"`
	TopTags          []TagCountPayload `json:"topTags"`
}

// TagCountPayload is one entry of the top-tags list.
type TagCountPayload struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// StatusPayload wraps GET /api/status.
type StatusPayload struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	DatabasePath string `json:"databasePath"`
	LockFilePath string `json:"lockFilePath"`
	DBConnected  bool   `json:"dbConnected"`
	LLMConnected bool   `json:"llmConnected"`
	Model        string `json:"model"`
}
