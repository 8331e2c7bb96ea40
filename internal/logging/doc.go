// Package logging constructs the slog loggers used across Pulpit.
//
// Loggers carry a component attribute so every line can be traced to the
// subsystem that emitted it. Two output formats are supported: a console
// handler that renders compact human-readable lines, and a standard JSON
// handler for machine consumption. Output can fan out to stdout/stderr and a
// log file simultaneously.
package logging
