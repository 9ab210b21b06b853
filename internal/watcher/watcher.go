package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"scanmatch/internal/logging"
	"scanmatch/internal/scan"
)

// DefaultPollInterval is the redundancy-poll cadence used when none is
// configured.
const DefaultPollInterval = 2 * time.Second

const eventBuffer = 16

// Watcher observes a scan source and emits each distinct new record once.
type Watcher struct {
	source   scan.Source
	logger   *slog.Logger
	interval time.Duration
	events   chan Event

	mu          sync.Mutex
	watching    bool
	baseline    scan.Signal
	lastEmitted scan.Key
	hasEmitted  bool
	cancel      context.CancelFunc

	wg sync.WaitGroup
}

// New builds a watcher over source. interval <= 0 falls back to
// DefaultPollInterval.
func New(source scan.Source, logger *slog.Logger, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		source:   source,
		logger:   logging.NewComponentLogger(logger, "watcher"),
		interval: interval,
		events:   make(chan Event, eventBuffer),
	}
}

// Events returns the watcher's event stream. The channel is buffered; when a
// consumer falls behind, events are dropped with a warning rather than
// blocking the check path.
func (w *Watcher) Events() <-chan Event { return w.events }

// Watching reports whether the watcher is currently active.
func (w *Watcher) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watching
}

// Start records the source's current modification signal as the baseline,
// transitions to watching, runs one immediate check, and launches the
// trigger loop. It fails when the source cannot be accessed at all.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}

	signal, err := w.source.Signal()
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("start watcher: %w", err)
	}
	w.baseline = signal
	w.watching = true

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	w.emit(Event{Type: EventWatching, Watching: true})
	w.logger.Info("watching scan source",
		logging.Duration("poll_interval", w.interval),
	)

	// A record that lands between the baseline read and here must not wait
	// for the first tick.
	w.check(runCtx)

	w.wg.Add(1)
	go w.loop(runCtx)
	return nil
}

// Stop cancels both triggers and transitions to idle. Safe to call when
// already stopped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return
	}
	w.watching = false
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()

	w.emit(Event{Type: EventWatching, Watching: false})
	w.logger.Info("watcher stopped")
}

// Latest reads the source once and returns the newest record. Usable without
// starting the watcher.
func (w *Watcher) Latest(ctx context.Context) (scan.Identity, error) {
	return scan.Latest(ctx, w.source)
}

// loop runs the two triggers: source change notifications when available,
// and the unconditional poll ticker as the redundancy path.
func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var changes <-chan struct{}
	if notifier, ok := w.source.(scan.Notifying); ok {
		ch, err := notifier.Changes(ctx)
		if err != nil {
			w.logger.Warn("change notifications unavailable; relying on polling",
				logging.Error(err),
			)
		} else {
			changes = ch
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		case _, ok := <-changes:
			if !ok {
				changes = nil // nil channel blocks; polling continues
				continue
			}
			w.check(ctx)
		}
	}
}

// check is the single debounced decision point both triggers funnel into.
// Reading the signal, updating the baseline, and recording the emission are
// one critical section so racing triggers cannot emit the same record twice.
func (w *Watcher) check(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watching {
		return
	}

	signal, err := w.source.Signal()
	if err != nil {
		// Transient inaccessibility: stay watching, retry on next trigger.
		return
	}
	if signal.Equal(w.baseline) {
		return
	}
	w.baseline = signal

	records, err := w.source.Records(ctx)
	if err != nil {
		w.emit(Event{Type: EventError, Err: err})
		w.logger.Warn("scan source read failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "scan_read_failed"),
		)
		return
	}

	latest, ok := scan.Newest(records)
	if !ok {
		return
	}
	key := latest.Key()
	if w.hasEmitted && key == w.lastEmitted {
		return
	}
	w.lastEmitted = key
	w.hasEmitted = true

	record := latest
	w.emit(Event{Type: EventNewRecord, Record: &record})
	w.logger.Info("new scan record",
		logging.String("scanned_at", key.ScanTimestamp),
		logging.String("id_number", key.IDNumber),
	)
}

func (w *Watcher) emit(event Event) {
	select {
	case w.events <- event:
	default:
		w.logger.Warn("event dropped; consumer not keeping up",
			logging.String("event", string(event.Type)),
		)
	}
}
