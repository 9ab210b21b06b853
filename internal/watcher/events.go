package watcher

import "scanmatch/internal/scan"

// EventType discriminates watcher events.
type EventType string

const (
	// EventNewRecord carries a newly-arrived scan record.
	EventNewRecord EventType = "new_record"
	// EventError reports a failed background check; watching continues.
	EventError EventType = "error"
	// EventWatching reports a transition into or out of the watching state.
	EventWatching EventType = "watching_status_changed"
)

// Event is one entry on the watcher's event stream.
type Event struct {
	Type     EventType
	Record   *scan.Identity // set for EventNewRecord
	Err      error          // set for EventError
	Watching bool           // valid for EventWatching
}
