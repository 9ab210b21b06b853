// Package logging builds slog loggers for scanmatch.
//
// It provides console and JSON handlers, typed attribute helpers, and
// standardized field keys so watcher, pipeline, and CLI output stays
// consistent. Components obtain a child logger via NewComponentLogger; the
// console handler prints the component as a message prefix instead of a
// key=value pair.
package logging
