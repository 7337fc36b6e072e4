package api

import (
	"time"

	"minutes/internal/store"
)

const dateOnly = "2006-01-02"

// FromActionItem converts a stored item to its wire form.
func FromActionItem(item store.ActionItem) ActionItemPayload {
	payload := ActionItemPayload{
		ID:           item.ID,
		TranscriptID: item.TranscriptID,
		Description:  item.Description,
		Owner:        item.Owner,
		Priority:     string(item.Priority),
		Tags:         item.Tags,
		IsDone:       item.IsDone,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	if item.DueDate != nil {
		formatted := item.DueDate.Format(dateOnly)
		payload.DueDate = &formatted
	}
	return payload
}

// FromActionItems converts a slice of stored items.
func FromActionItems(items []store.ActionItem) []ActionItemPayload {
	out := make([]ActionItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, FromActionItem(item))
	}
	return out
}

// FromTranscript converts a stored transcript to its wire form.
func FromTranscript(transcript *store.Transcript) TranscriptPayload {
	return TranscriptPayload{
		ID:          transcript.ID,
		RawText:     transcript.RawText,
		ProcessedAt: transcript.ProcessedAt.UTC().Format(time.RFC3339),
		Metadata: TranscriptMetadata{
			WordCount: transcript.WordCount,
			ItemCount: transcript.ItemCount,
			ModelUsed: transcript.ModelUsed,
		},
		ActionItems: FromActionItems(transcript.ActionItems),
	}
}

// FromStats converts an aggregate summary to its wire form.
func FromStats(stats *store.StatsSummary) StatsPayload {
	byPriority := make(map[string]int, len(stats.ByPriority))
	for priority, count := range stats.ByPriority {
		byPriority[string(priority)] = count
	}
	topTags := make([]TagCountPayload, 0, len(stats.TopTags))
	for _, tag := range stats.TopTags {
		topTags = append(topTags, TagCountPayload{Tag: tag.Tag, Count: tag.Count})
	}
	return StatsPayload{
		TotalTranscripts: stats.TotalTranscripts,
		TotalItems:       stats.TotalItems,
		DoneItems:        stats.DoneItems,
		OpenItems:        stats.OpenItems,
		ByPriority:       byPriority,
		ItemsWithOwner:   stats.ItemsWithOwner,
		ItemsWithDueDate: stats.ItemsWithDueDate,
		TopTags:          topTags,
	}
}
