// Package export renders stored action items as CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"minutes/internal/store"
)

// usDate renders a date the way the export consumers expect, e.g. "3/6/2026".
const usDate = "1/2/2006"

// WriteCSV writes all action items from the given transcripts, newest
// transcript first, preserving item order within each transcript.
func WriteCSV(w io.Writer, transcripts []*store.Transcript) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Description", "Owner", "Due Date", "Status", "Tags", "Transcript Date"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, transcript := range transcripts {
		for _, item := range transcript.ActionItems {
			owner := ""
			if item.Owner != nil {
				owner = *item.Owner
			}
			dueDate := ""
			if item.DueDate != nil {
				dueDate = item.DueDate.Format(usDate)
			}
			status := "Open"
			if item.IsDone {
				status = "Done"
			}
			record := []string{
				item.Description,
				owner,
				dueDate,
				status,
				strings.Join(item.Tags, "; "),
				transcript.ProcessedAt.Format(usDate),
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Filename returns the suggested download name for an export generated on
// the given date string (YYYY-MM-DD).
func Filename(date string) string {
	return "action-items-" + date + ".csv"
}
