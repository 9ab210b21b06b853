package scan

import (
	"context"
	"errors"
	"sort"
	"time"
)

var (
	// ErrSourceUnavailable means the record source cannot be reached at all.
	ErrSourceUnavailable = errors.New("scan source unavailable")
	// ErrNoRecords means the source is reachable but holds no valid records.
	ErrNoRecords = errors.New("scan source has no records")
)

// Signal is the opaque modification token of a record source. The watcher
// compares successive signals to decide whether a re-read is worthwhile.
type Signal struct {
	ModTime time.Time
	Size    int64
}

// Equal reports whether two signals describe the same source state.
func (s Signal) Equal(other Signal) bool {
	return s.ModTime.Equal(other.ModTime) && s.Size == other.Size
}

// Source is the external record source the watcher observes.
type Source interface {
	// Records reads and parses the full record set. Malformed records are
	// skipped, not fatal; an unreachable source yields ErrSourceUnavailable.
	Records(ctx context.Context) ([]Identity, error)
	// Signal returns the source's current modification token, or
	// ErrSourceUnavailable.
	Signal() (Signal, error)
}

// Notifying is an optional Source capability: push change notifications.
// Sources without it are still covered by the watcher's polling trigger.
type Notifying interface {
	// Changes delivers a tick whenever the source may have changed. The
	// channel closes when ctx is done.
	Changes(ctx context.Context) (<-chan struct{}, error)
}

// Latest reads the source once and returns its newest record by scan time.
// Ties keep source order. Works without a running watcher.
func Latest(ctx context.Context, source Source) (Identity, error) {
	records, err := source.Records(ctx)
	if err != nil {
		return Identity{}, err
	}
	latest, ok := Newest(records)
	if !ok {
		return Identity{}, ErrNoRecords
	}
	return latest, nil
}

// Newest returns the most recent record by descending scan time; ties keep
// source order. ok is false for an empty set.
func Newest(records []Identity) (Identity, bool) {
	if len(records) == 0 {
		return Identity{}, false
	}
	sorted := make([]Identity, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScanTime.After(sorted[j].ScanTime)
	})
	return sorted[0], true
}
