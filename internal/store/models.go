package store

import (
	"time"

	"minutes/internal/extraction"
)

// Transcript is one stored meeting text with its derived metadata. The
// metadata fields are computed at creation and never mutated afterwards,
// so ItemCount reflects the extraction result even if items are later
// edited.
type Transcript struct {
	ID          string
	RawText     string
	ProcessedAt time.Time
	WordCount   int
	ItemCount   int
	ModelUsed   string
	ActionItems []ActionItem
}

// ActionItem is one stored task belonging to a transcript.
type ActionItem struct {
	ID           string
	TranscriptID string
	Description  string
	Owner        *string
	DueDate      *time.Time
	Priority     extraction.Priority
	Tags         []string
	IsDone       bool
	CreatedAt    time.Time
}

// ActionItemUpdate carries partial updates for an action item. Nil fields
// are left untouched; OwnerSet and DueDateSet distinguish "clear" from
// "leave alone" for the nullable columns.
type ActionItemUpdate struct {
	Description *string
	Owner       *string
	OwnerSet    bool
	DueDate     *time.Time
	DueDateSet  bool
	Priority    *extraction.Priority
	Tags        []string
	TagsSet     bool
}

// StatsSummary aggregates stored action items for the stats views.
type StatsSummary struct {
	TotalTranscripts int
	TotalItems       int
	DoneItems        int
	OpenItems        int
	ByPriority       map[extraction.Priority]int
	ItemsWithOwner   int
	ItemsWithDueDate int
	TopTags          []TagCount
}

// TagCount pairs a tag with how many items carry it.
type TagCount struct {
	Tag   string
	Count int
}
