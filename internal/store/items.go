package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"minutes/internal/extraction"
)

const itemColumns = "id, transcript_id, description, owner, due_date, priority, tags_json, is_done, created_at"

// CreateActionItem adds one item to an existing transcript. Defaults are
// applied the same way extraction output is persisted.
func (s *Store) CreateActionItem(ctx context.Context, transcriptID string, input extraction.ActionItemInput) (*ActionItem, error) {
	if input.Description == "" {
		return nil, errors.New("description must not be empty")
	}
	var exists int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM transcripts WHERE id = ?`, transcriptID)
	if err := row.Scan(&exists); err != nil {
		return nil, fmt.Errorf("check transcript: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	tagsJSON, err := encodeTags(input.Tags)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO action_items (id, transcript_id, description, owner, due_date, priority, tags_json, is_done, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		id,
		transcriptID,
		input.Description,
		nullableString(input.Owner),
		nullableDate(input.DueDate),
		string(extraction.NormalizePriority(string(input.Priority))),
		tagsJSON,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert action item: %w", err)
	}
	return s.GetActionItem(ctx, id)
}

// GetActionItem fetches one item by id.
func (s *Store) GetActionItem(ctx context.Context, id string) (*ActionItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM action_items WHERE id = ?`, id)
	item, err := scanActionItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get action item: %w", err)
	}
	return item, nil
}

// ListActionItemsByTranscript returns a transcript's items in insertion
// order, matching extraction order.
func (s *Store) ListActionItemsByTranscript(ctx context.Context, transcriptID string) ([]ActionItem, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+itemColumns+` FROM action_items WHERE transcript_id = ? ORDER BY rowid`,
		transcriptID,
	)
	if err != nil {
		return nil, fmt.Errorf("list action items: %w", err)
	}
	defer rows.Close()
	return collectActionItems(rows)
}

// UpdateActionItem applies a partial update and returns the updated row.
func (s *Store) UpdateActionItem(ctx context.Context, id string, update ActionItemUpdate) (*ActionItem, error) {
	item, err := s.GetActionItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Description != nil {
		if *update.Description == "" {
			return nil, errors.New("description must not be empty")
		}
		item.Description = *update.Description
	}
	if update.OwnerSet {
		item.Owner = update.Owner
	}
	if update.DueDateSet {
		item.DueDate = update.DueDate
	}
	if update.Priority != nil {
		item.Priority = extraction.NormalizePriority(string(*update.Priority))
	}
	if update.TagsSet {
		item.Tags = update.Tags
	}

	tagsJSON, err := encodeTags(item.Tags)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(
		ctx,
		`UPDATE action_items SET description = ?, owner = ?, due_date = ?, priority = ?, tags_json = ? WHERE id = ?`,
		item.Description,
		nullableString(item.Owner),
		nullableDate(item.DueDate),
		string(item.Priority),
		tagsJSON,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update action item: %w", err)
	}
	return s.GetActionItem(ctx, id)
}

// DeleteActionItem removes one item.
func (s *Store) DeleteActionItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM action_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete action item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActionItemDone flips the completion flag and returns the updated
// row. Applying it twice restores the original state.
func (s *Store) ToggleActionItemDone(ctx context.Context, id string) (*ActionItem, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE action_items SET is_done = NOT is_done WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("toggle action item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.GetActionItem(ctx, id)
}

// SearchActionItems returns items whose description, owner, or tags contain
// the query, newest first. An empty query returns everything.
func (s *Store) SearchActionItems(ctx context.Context, query string) ([]ActionItem, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+itemColumns+` FROM action_items
         WHERE description LIKE ? OR owner LIKE ? OR tags_json LIKE ?
         ORDER BY created_at DESC, id`,
		pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("search action items: %w", err)
	}
	defer rows.Close()
	return collectActionItems(rows)
}

// Stats aggregates stored transcripts and items.
func (s *Store) Stats(ctx context.Context) (*StatsSummary, error) {
	summary := &StatsSummary{
		ByPriority: map[extraction.Priority]int{
			extraction.PriorityHigh:   0,
			extraction.PriorityMedium: 0,
			extraction.PriorityLow:    0,
		},
	}

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM transcripts`)
	if err := row.Scan(&summary.TotalTranscripts); err != nil {
		return nil, fmt.Errorf("count transcripts: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT priority, is_done, owner IS NOT NULL, due_date IS NOT NULL, COUNT(1)
         FROM action_items GROUP BY priority, is_done, owner IS NOT NULL, due_date IS NOT NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate action items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			priority   string
			isDone     bool
			hasOwner   bool
			hasDueDate bool
			count      int
		)
		if err := rows.Scan(&priority, &isDone, &hasOwner, &hasDueDate, &count); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		summary.TotalItems += count
		if isDone {
			summary.DoneItems += count
		} else {
			summary.OpenItems += count
		}
		if hasOwner {
			summary.ItemsWithOwner += count
		}
		if hasDueDate {
			summary.ItemsWithDueDate += count
		}
		summary.ByPriority[extraction.NormalizePriority(priority)] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate aggregates: %w", err)
	}

	topTags, err := s.topTags(ctx, topTagLimit)
	if err != nil {
		return nil, err
	}
	summary.TopTags = topTags
	return summary, nil
}

const topTagLimit = 5

func (s *Store) topTags(ctx context.Context, limit int) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tags_json FROM action_items WHERE tags_json != '[]'`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan tags: %w", err)
		}
		for _, tag := range decodeTags(raw) {
			counts[tag]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

func collectActionItems(rows *sql.Rows) ([]ActionItem, error) {
	items := []ActionItem{}
	for rows.Next() {
		item, err := scanActionItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate action items: %w", err)
	}
	return items, nil
}

func scanActionItem(row rowScanner) (*ActionItem, error) {
	var (
		item      ActionItem
		owner     sql.NullString
		dueDate   sql.NullString
		priority  string
		tagsJSON  string
		createdAt string
	)
	if err := row.Scan(
		&item.ID,
		&item.TranscriptID,
		&item.Description,
		&owner,
		&dueDate,
		&priority,
		&tagsJSON,
		&item.IsDone,
		&createdAt,
	); err != nil {
		return nil, err
	}
	if owner.Valid && owner.String != "" {
		value := owner.String
		item.Owner = &value
	}
	if dueDate.Valid && dueDate.String != "" {
		if parsed, err := time.Parse("2006-01-02", dueDate.String); err == nil {
			item.DueDate = &parsed
		}
	}
	item.Priority = extraction.NormalizePriority(priority)
	item.Tags = decodeTags(tagsJSON)
	parsed, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = parsed
	return &item, nil
}
