package extraction

import (
	"errors"
	"testing"
	"time"
)

func TestParseResponseWellFormed(t *testing.T) {
	content := `{
		"actionItems": [
			{
				"description": "Send the quarterly report",
				"owner": "John",
				"dueDate": "2026-03-06",
				"priority": "high",
				"tags": ["urgent", "review"]
			},
			{
				"description": "Book the offsite venue",
				"owner": null,
				"dueDate": null,
				"tags": []
			}
		]
	}`

	items, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Description != "Send the quarterly report" {
		t.Fatalf("unexpected description: %q", first.Description)
	}
	if first.Owner == nil || *first.Owner != "John" {
		t.Fatalf("unexpected owner: %v", first.Owner)
	}
	want := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	if first.DueDate == nil || !first.DueDate.Equal(want) {
		t.Fatalf("unexpected due date: %v", first.DueDate)
	}
	if first.Priority != PriorityHigh {
		t.Fatalf("unexpected priority: %q", first.Priority)
	}
	if len(first.Tags) != 2 {
		t.Fatalf("unexpected tags: %v", first.Tags)
	}

	second := items[1]
	if second.Owner != nil || second.DueDate != nil {
		t.Fatalf("expected null owner and due date, got %v %v", second.Owner, second.DueDate)
	}
	if second.Priority != PriorityMedium {
		t.Fatalf("expected defaulted priority, got %q", second.Priority)
	}
	if second.Tags == nil || len(second.Tags) != 0 {
		t.Fatalf("expected empty tag slice, got %v", second.Tags)
	}
}

func TestParseResponseCodeFenced(t *testing.T) {
	content := "```json\n{\"actionItems\":[{\"description\":\"Follow up with vendor\"}]}\n```"
	items, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if len(items) != 1 || items[0].Description != "Follow up with vendor" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestParseResponseErrors(t *testing.T) {
	cases := []struct {
		name       string
		content    string
		wantParse  bool
		wantSchema bool
	}{
		{name: "not json", content: "sorry, I cannot help", wantParse: true},
		{name: "empty", content: "", wantParse: true},
		{name: "missing actionItems", content: `{"items":[]}`, wantSchema: true},
		{name: "null actionItems", content: `{"actionItems":null}`, wantSchema: true},
		{name: "actionItems not array", content: `{"actionItems":"none"}`, wantSchema: true},
		{name: "empty description", content: `{"actionItems":[{"description":"  "}]}`, wantSchema: true},
		{name: "missing description", content: `{"actionItems":[{"owner":"John"}]}`, wantSchema: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseResponse(tc.content)
			if err == nil {
				t.Fatal("expected error")
			}
			var parseErr *ParseError
			var schemaErr *SchemaError
			if tc.wantParse && !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %T: %v", err, err)
			}
			if tc.wantSchema && !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %T: %v", err, err)
			}
		})
	}
}

func TestParseResponseLenientFields(t *testing.T) {
	content := `{
		"actionItems": [
			{
				"description": "Check the contract",
				"priority": "URGENT",
				"tags": "not-a-list",
				"dueDate": "tomorrow"
			}
		]
	}`

	items, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	item := items[0]
	if item.Priority != PriorityMedium {
		t.Fatalf("expected invalid priority coerced to medium, got %q", item.Priority)
	}
	if len(item.Tags) != 0 {
		t.Fatalf("expected mistyped tags coerced to empty, got %v", item.Tags)
	}
	if item.DueDate != nil {
		t.Fatalf("expected unparsable due date coerced to nil, got %v", item.DueDate)
	}
}

func TestNormalizePriority(t *testing.T) {
	cases := map[string]Priority{
		"high":    PriorityHigh,
		"HIGH":    PriorityHigh,
		" low ":   PriorityLow,
		"medium":  PriorityMedium,
		"":        PriorityMedium,
		"extreme": PriorityMedium,
	}
	for input, want := range cases {
		if got := NormalizePriority(input); got != want {
			t.Errorf("NormalizePriority(%q) = %q, want %q", input, got, want)
		}
	}
}
