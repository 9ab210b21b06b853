package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"scanmatch/internal/contacts"
	"scanmatch/internal/logging"
	"scanmatch/internal/pipeline"
	"scanmatch/internal/scan"
	"scanmatch/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the scan export and match each new scan against contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchProcess(cmd.Context(), ctx, top)
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Number of ranked candidates to display per scan")
	return cmd
}

func runWatchProcess(cmdCtx context.Context, ctx *commandContext, top int) error {
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "scanmatch.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire watch lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another scanmatch watch holds %s", lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	store, err := contacts.Open(cfg.Paths.ContactsDB)
	if err != nil {
		logger.Error("open contact store", logging.Error(err))
		return err
	}
	defer func() { _ = store.Close() }()

	matcher := pipeline.New(store, logger, cfg.Search.PageSize)
	source := scan.NewCSVSource(cfg.Paths.ScanCSV, logger)

	interval := time.Duration(cfg.Watcher.PollInterval) * time.Millisecond
	w := watcher.New(source, logger, interval)
	if err := w.Start(signalCtx); err != nil {
		logger.Error("start watcher", logging.Error(err))
		return err
	}
	defer w.Stop()

	out := os.Stdout
	fmt.Fprintf(out, "Watching %s (poll every %s, Ctrl-C to stop)\n", source.Path(), interval)

	for {
		select {
		case <-signalCtx.Done():
			logger.Info("scanmatch watch shutting down")
			return nil
		case event := <-w.Events():
			handleWatchEvent(signalCtx, out, matcher, event, top)
		}
	}
}

func handleWatchEvent(ctx context.Context, out *os.File, matcher *pipeline.Pipeline, event watcher.Event, top int) {
	switch event.Type {
	case watcher.EventNewRecord:
		if event.Record == nil {
			return
		}
		identity := *event.Record
		fmt.Fprintln(out)
		printIdentity(out, identity)
		matches, err := matcher.RunMatch(ctx, identity)
		if errors.Is(err, pipeline.ErrInsufficientCriteria) {
			fmt.Fprintln(out, "Scan carries no name or date of birth; skipping match")
			return
		}
		if err != nil {
			fmt.Fprintf(out, "Match failed: %v\n", err)
			return
		}
		printMatches(out, matches, top)
	case watcher.EventError:
		fmt.Fprintf(out, "Watch error: %v\n", event.Err)
	case watcher.EventWatching:
		// Already narrated by the startup banner and the shutdown log.
	}
}
