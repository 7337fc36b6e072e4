// Package logging builds the slog loggers used across minutes. It provides
// a console handler for interactive use, a JSON handler for machine
// consumption, and small attr helpers shared by every component.
package logging
