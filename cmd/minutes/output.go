package main

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"minutes/internal/store"
	"minutes/internal/textutil"
)

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatOwner(owner *string) string {
	if owner == nil || strings.TrimSpace(*owner) == "" {
		return "-"
	}
	return *owner
}

func formatDueDate(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format("2006-01-02")
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ", ")
}

func formatStatus(done bool) string {
	if done {
		return "Done"
	}
	return "Open"
}

func itemRow(item store.ActionItem) []string {
	return []string{
		shortID(item.ID),
		textutil.Snippet(item.Description, 60),
		formatOwner(item.Owner),
		formatDueDate(item.DueDate),
		textutil.TitleCase(string(item.Priority)),
		formatTags(item.Tags),
		formatStatus(item.IsDone),
	}
}

var itemHeaders = []string{"ID", "Description", "Owner", "Due", "Priority", "Tags", "Status"}

var itemAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
