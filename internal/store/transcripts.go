package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"minutes/internal/extraction"
	"minutes/internal/textutil"
)

const transcriptColumns = "id, raw_text, processed_at, word_count, item_count, model_used"

// CreateTranscriptWithItems stores a transcript and its extracted items as
// one atomic unit. Metadata (word count, item count, model) is computed here
// and frozen.
func (s *Store) CreateTranscriptWithItems(ctx context.Context, rawText string, items []extraction.ActionItemInput, modelUsed string) (*Transcript, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	transcriptID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO transcripts (id, raw_text, processed_at, word_count, item_count, model_used)
         VALUES (?, ?, ?, ?, ?, ?)`,
		transcriptID,
		rawText,
		timestamp,
		textutil.WordCount(rawText),
		len(items),
		modelUsed,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transcript: %w", err)
	}

	for _, item := range items {
		tagsJSON, err := encodeTags(item.Tags)
		if err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO action_items (id, transcript_id, description, owner, due_date, priority, tags_json, is_done, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`,
			uuid.NewString(),
			transcriptID,
			item.Description,
			nullableString(item.Owner),
			nullableDate(item.DueDate),
			string(extraction.NormalizePriority(string(item.Priority))),
			tagsJSON,
			timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("insert action item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transcript: %w", err)
	}

	return s.GetTranscript(ctx, transcriptID)
}

// GetTranscript fetches a transcript and its action items.
func (s *Store) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transcriptColumns+` FROM transcripts WHERE id = ?`, id)
	transcript, err := scanTranscript(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transcript: %w", err)
	}

	items, err := s.ListActionItemsByTranscript(ctx, id)
	if err != nil {
		return nil, err
	}
	transcript.ActionItems = items
	return transcript, nil
}

// ListTranscripts returns all transcripts newest first, with their items.
func (s *Store) ListTranscripts(ctx context.Context) ([]*Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+transcriptColumns+` FROM transcripts ORDER BY processed_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	var transcripts []*Transcript
	for rows.Next() {
		transcript, err := scanTranscript(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		transcripts = append(transcripts, transcript)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}

	for _, transcript := range transcripts {
		items, err := s.ListActionItemsByTranscript(ctx, transcript.ID)
		if err != nil {
			return nil, err
		}
		transcript.ActionItems = items
	}
	return transcripts, nil
}

// ListTranscriptIDsByRecency returns all transcript ids newest first.
func (s *Store) ListTranscriptIDsByRecency(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM transcripts ORDER BY processed_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transcript ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan transcript id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcript ids: %w", err)
	}
	return ids, nil
}

// DeleteTranscriptsByIDs removes the given transcripts; action items go with
// them via the cascade.
func (s *Store) DeleteTranscriptsByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transcripts WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("delete transcripts: %w", err)
	}
	return nil
}

// EnforceRetention deletes the oldest transcripts beyond the cap and returns
// the deleted ids. Safe to re-run; a no-op when at or under the cap.
func (s *Store) EnforceRetention(ctx context.Context, maxTranscripts int) ([]string, error) {
	if maxTranscripts < 1 {
		return nil, fmt.Errorf("retention cap must be positive, got %d", maxTranscripts)
	}
	ids, err := s.ListTranscriptIDsByRecency(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) <= maxTranscripts {
		return nil, nil
	}
	excess := ids[maxTranscripts:]
	if err := s.DeleteTranscriptsByIDs(ctx, excess); err != nil {
		return nil, err
	}
	return excess, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTranscript(row rowScanner) (*Transcript, error) {
	var (
		transcript  Transcript
		processedAt string
	)
	if err := row.Scan(
		&transcript.ID,
		&transcript.RawText,
		&processedAt,
		&transcript.WordCount,
		&transcript.ItemCount,
		&transcript.ModelUsed,
	); err != nil {
		return nil, err
	}
	parsed, err := parseTimestamp(processedAt)
	if err != nil {
		return nil, err
	}
	transcript.ProcessedAt = parsed
	return &transcript, nil
}
