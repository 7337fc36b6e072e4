package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"minutes/internal/services/llm"
)

// Priority classifies an action item's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// NormalizePriority coerces arbitrary model output to a valid priority,
// defaulting to medium.
func NormalizePriority(value string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(value))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// ActionItemInput is one schema-conformant extracted task with defaults
// applied. Owner and DueDate are nil when the model could not infer them.
type ActionItemInput struct {
	Description string
	Owner       *string
	DueDate     *time.Time
	Priority    Priority
	Tags        []string
}

// ParseError indicates the model response was not well-formed JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates well-formed JSON that does not match the
// action-item schema.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "invalid model response: " + e.Reason
}

type rawResponse struct {
	ActionItems json.RawMessage `json:"actionItems"`
}

// rawActionItem keeps loosely-typed fields as raw JSON so one mistyped
// field degrades to its default instead of failing the whole payload.
type rawActionItem struct {
	Description json.RawMessage `json:"description"`
	Owner       json.RawMessage `json:"owner"`
	DueDate     json.RawMessage `json:"dueDate"`
	Priority    json.RawMessage `json:"priority"`
	Tags        json.RawMessage `json:"tags"`
}

// ParseResponse validates the raw model output against the action-item
// schema and returns the normalized items.
func ParseResponse(content string) ([]ActionItemInput, error) {
	var envelope rawResponse
	if err := llm.DecodeLLMJSON(content, &envelope); err != nil {
		return nil, &ParseError{Err: err}
	}
	if len(envelope.ActionItems) == 0 || string(envelope.ActionItems) == "null" {
		return nil, &SchemaError{Reason: "missing actionItems field"}
	}

	var rawItems []rawActionItem
	if err := json.Unmarshal(envelope.ActionItems, &rawItems); err != nil {
		return nil, &SchemaError{Reason: "actionItems is not an array"}
	}

	items := make([]ActionItemInput, 0, len(rawItems))
	for i, raw := range rawItems {
		item, err := normalizeItem(raw)
		if err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("item %d: %v", i, err)}
		}
		items = append(items, item)
	}
	return items, nil
}

func normalizeItem(raw rawActionItem) (ActionItemInput, error) {
	var item ActionItemInput

	var description string
	if err := json.Unmarshal(raw.Description, &description); err != nil {
		return item, fmt.Errorf("description must be a string")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return item, fmt.Errorf("description must not be empty")
	}
	item.Description = description

	if owner := decodeOptionalString(raw.Owner); owner != "" {
		item.Owner = &owner
	}
	if due := decodeOptionalString(raw.DueDate); due != "" {
		if parsed, err := time.Parse("2006-01-02", due); err == nil {
			item.DueDate = &parsed
		}
	}

	var priority string
	if len(raw.Priority) > 0 {
		// Mistyped priority degrades to the default inside NormalizePriority.
		_ = json.Unmarshal(raw.Priority, &priority)
	}
	item.Priority = NormalizePriority(priority)

	item.Tags = []string{}
	if len(raw.Tags) > 0 {
		var tags []string
		if err := json.Unmarshal(raw.Tags, &tags); err == nil {
			for _, tag := range tags {
				if trimmed := strings.TrimSpace(tag); trimmed != "" {
					item.Tags = append(item.Tags, trimmed)
				}
			}
		}
	}

	return item, nil
}

func decodeOptionalString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
