// Package daemon hosts the minutes HTTP API behind a single-instance file
// lock. The daemon owns the store, processor, and LLM client lifecycles and
// exposes transcript processing, action-item CRUD, CSV export, stats, and
// health over localhost.
package daemon
