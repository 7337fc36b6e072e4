package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"minutes/internal/extraction"
	"minutes/internal/store"
	"minutes/internal/testsupport"
)

func strPtr(s string) *string { return &s }

func sampleItems() []extraction.ActionItemInput {
	due := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	return []extraction.ActionItemInput{
		{
			Description: "Send the quarterly report",
			Owner:       strPtr("John"),
			DueDate:     &due,
			Priority:    extraction.PriorityHigh,
			Tags:        []string{"urgent", "review"},
		},
		{
			Description: "Book the offsite venue",
			Priority:    extraction.PriorityMedium,
			Tags:        []string{},
		},
	}
}

func TestCreateTranscriptWithItems(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	transcript, err := st.CreateTranscriptWithItems(ctx, "John will send the quarterly report by Friday.", sampleItems(), "llama-3.1-8b-instant")
	if err != nil {
		t.Fatalf("CreateTranscriptWithItems failed: %v", err)
	}
	if transcript.ID == "" {
		t.Fatal("expected generated id")
	}
	if transcript.WordCount != 8 {
		t.Fatalf("expected word count 8, got %d", transcript.WordCount)
	}
	if transcript.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", transcript.ItemCount)
	}
	if transcript.ModelUsed != "llama-3.1-8b-instant" {
		t.Fatalf("unexpected model: %q", transcript.ModelUsed)
	}
	if len(transcript.ActionItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(transcript.ActionItems))
	}

	first := transcript.ActionItems[0]
	if first.Description != "Send the quarterly report" {
		t.Fatalf("items out of order: %q", first.Description)
	}
	if first.Owner == nil || *first.Owner != "John" {
		t.Fatalf("unexpected owner: %v", first.Owner)
	}
	if first.DueDate == nil || first.DueDate.Format("2006-01-02") != "2026-03-06" {
		t.Fatalf("unexpected due date: %v", first.DueDate)
	}
	if first.IsDone {
		t.Fatal("new items must start not done")
	}

	second := transcript.ActionItems[1]
	if second.Owner != nil || second.DueDate != nil {
		t.Fatalf("expected nil owner and due date, got %v %v", second.Owner, second.DueDate)
	}
	if second.Tags == nil || len(second.Tags) != 0 {
		t.Fatalf("expected empty tags, got %v", second.Tags)
	}
}

func TestCreateTranscriptDefaultsPriority(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	items := []extraction.ActionItemInput{{Description: "Task without priority"}}
	transcript, err := st.CreateTranscriptWithItems(ctx, "A transcript long enough.", items, "m")
	if err != nil {
		t.Fatalf("CreateTranscriptWithItems failed: %v", err)
	}
	if got := transcript.ActionItems[0].Priority; got != extraction.PriorityMedium {
		t.Fatalf("expected defaulted priority medium, got %q", got)
	}
}

func TestGetTranscriptNotFound(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if _, err := st.GetTranscript(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEnforceRetentionKeepsNewest(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	var ids []string
	for i := 0; i < 6; i++ {
		transcript, err := st.CreateTranscriptWithItems(ctx, "Transcript number with padding.", sampleItems(), "m")
		if err != nil {
			t.Fatalf("create transcript %d: %v", i, err)
		}
		ids = append(ids, transcript.ID)
		time.Sleep(2 * time.Millisecond)
	}

	deleted, err := st.EnforceRetention(ctx, 5)
	if err != nil {
		t.Fatalf("EnforceRetention failed: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != ids[0] {
		t.Fatalf("expected oldest %q deleted, got %v", ids[0], deleted)
	}

	remaining, err := st.ListTranscriptIDsByRecency(ctx)
	if err != nil {
		t.Fatalf("ListTranscriptIDsByRecency failed: %v", err)
	}
	if len(remaining) != 5 {
		t.Fatalf("expected 5 transcripts, got %d", len(remaining))
	}
	if remaining[0] != ids[5] {
		t.Fatalf("expected newest first, got %q", remaining[0])
	}

	// The cascade must remove the deleted transcript's items.
	if _, err := st.GetTranscript(ctx, ids[0]); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected deleted transcript gone, got %v", err)
	}
	items, err := st.SearchActionItems(ctx, "")
	if err != nil {
		t.Fatalf("SearchActionItems failed: %v", err)
	}
	for _, item := range items {
		if item.TranscriptID == ids[0] {
			t.Fatalf("orphaned item %q survived cascade", item.ID)
		}
	}
}

func TestEnforceRetentionIdempotent(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := st.CreateTranscriptWithItems(ctx, "A short but valid transcript.", nil, "m"); err != nil {
			t.Fatalf("create transcript: %v", err)
		}
	}

	for run := 0; run < 2; run++ {
		deleted, err := st.EnforceRetention(ctx, 5)
		if err != nil {
			t.Fatalf("EnforceRetention run %d failed: %v", run, err)
		}
		if len(deleted) != 0 {
			t.Fatalf("expected no deletions under the cap, got %v", deleted)
		}
	}
}

func TestToggleActionItemDone(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	transcript, err := st.CreateTranscriptWithItems(ctx, "A transcript long enough.", sampleItems(), "m")
	if err != nil {
		t.Fatalf("create transcript: %v", err)
	}
	id := transcript.ActionItems[0].ID

	toggled, err := st.ToggleActionItemDone(ctx, id)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.IsDone {
		t.Fatal("expected item done after first toggle")
	}

	toggled, err = st.ToggleActionItemDone(ctx, id)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if toggled.IsDone {
		t.Fatal("expected toggle to be its own inverse")
	}

	if _, err := st.ToggleActionItemDone(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateActionItem(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	transcript, err := st.CreateTranscriptWithItems(ctx, "A transcript long enough.", sampleItems(), "m")
	if err != nil {
		t.Fatalf("create transcript: %v", err)
	}
	id := transcript.ActionItems[0].ID

	newDesc := "Send the annual report"
	high := extraction.PriorityLow
	updated, err := st.UpdateActionItem(ctx, id, store.ActionItemUpdate{
		Description: &newDesc,
		Owner:       nil,
		OwnerSet:    true,
		Priority:    &high,
		Tags:        []string{"finance"},
		TagsSet:     true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Description != newDesc {
		t.Fatalf("description not updated: %q", updated.Description)
	}
	if updated.Owner != nil {
		t.Fatalf("expected owner cleared, got %v", updated.Owner)
	}
	if updated.Priority != extraction.PriorityLow {
		t.Fatalf("priority not updated: %q", updated.Priority)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "finance" {
		t.Fatalf("tags not updated: %v", updated.Tags)
	}
	// Unset fields survive.
	if updated.DueDate == nil {
		t.Fatal("expected due date untouched")
	}
}

func TestCreateAndDeleteActionItem(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	transcript, err := st.CreateTranscriptWithItems(ctx, "A transcript long enough.", nil, "m")
	if err != nil {
		t.Fatalf("create transcript: %v", err)
	}

	item, err := st.CreateActionItem(ctx, transcript.ID, extraction.ActionItemInput{
		Description: "Manually added task",
		Priority:    "bogus",
	})
	if err != nil {
		t.Fatalf("create action item: %v", err)
	}
	if item.Priority != extraction.PriorityMedium {
		t.Fatalf("expected coerced priority, got %q", item.Priority)
	}
	if item.IsDone {
		t.Fatal("new item must start not done")
	}

	if _, err := st.CreateActionItem(ctx, "missing", extraction.ActionItemInput{Description: "x"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing transcript, got %v", err)
	}

	if err := st.DeleteActionItem(ctx, item.ID); err != nil {
		t.Fatalf("delete action item: %v", err)
	}
	if err := st.DeleteActionItem(ctx, item.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSearchActionItems(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if _, err := st.CreateTranscriptWithItems(ctx, "A transcript long enough.", sampleItems(), "m"); err != nil {
		t.Fatalf("create transcript: %v", err)
	}

	matches, err := st.SearchActionItems(ctx, "quarterly")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	matches, err = st.SearchActionItems(ctx, "urgent")
	if err != nil {
		t.Fatalf("tag search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected tag match, got %d", len(matches))
	}

	matches, err = st.SearchActionItems(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestStats(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	transcript, err := st.CreateTranscriptWithItems(ctx, "A transcript long enough.", sampleItems(), "m")
	if err != nil {
		t.Fatalf("create transcript: %v", err)
	}
	if _, err := st.ToggleActionItemDone(ctx, transcript.ActionItems[0].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalTranscripts != 1 {
		t.Fatalf("expected 1 transcript, got %d", stats.TotalTranscripts)
	}
	if stats.TotalItems != 2 || stats.DoneItems != 1 || stats.OpenItems != 1 {
		t.Fatalf("unexpected item counts: %+v", stats)
	}
	if stats.ByPriority[extraction.PriorityHigh] != 1 || stats.ByPriority[extraction.PriorityMedium] != 1 {
		t.Fatalf("unexpected priority breakdown: %v", stats.ByPriority)
	}
	if stats.ItemsWithOwner != 1 || stats.ItemsWithDueDate != 1 {
		t.Fatalf("unexpected owner/due counts: %+v", stats)
	}
	if len(stats.TopTags) != 2 {
		t.Fatalf("expected 2 tags, got %+v", stats.TopTags)
	}
	// Equal counts break ties alphabetically.
	if stats.TopTags[0].Tag != "review" || stats.TopTags[1].Tag != "urgent" {
		t.Fatalf("unexpected tag order: %+v", stats.TopTags)
	}
	if stats.TopTags[0].Count != 1 || stats.TopTags[1].Count != 1 {
		t.Fatalf("unexpected tag counts: %+v", stats.TopTags)
	}
}

func TestCheckHealth(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if err := st.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
}
