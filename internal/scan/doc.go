// Package scan models scanned identity records and adapts the Scan-ID CSV
// export as a record source.
//
// The CSV adapter reads the export written by the ID scanner software, skips
// malformed rows, and exposes a modification signal plus optional file change
// notifications for the watcher. Latest returns the newest record by scan
// timestamp without requiring a running watcher.
package scan
