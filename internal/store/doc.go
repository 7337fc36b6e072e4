// Package store persists transcripts and action items in SQLite. Schema
// changes ship as embedded migrations applied at open time. Transcript
// creation is transactional; retention enforcement is a separate idempotent
// pass so a cleanup failure never threatens a committed transcript.
package store
