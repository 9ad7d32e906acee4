package app

import (
	"context"
	"fmt"

	fsw "github.com/corey/orgscan/internal/adapters/fsnotify"
	"github.com/corey/orgscan/internal/adapters/schedule"
	"github.com/corey/orgscan/internal/logging"
)

// ScanFunc receives the result of every scan made by Watch.
type ScanFunc func(out *Outcome, err error)

// Watch scans once, then again whenever the deny-list or a document changes
// and on every tick of the configured schedule. Triggers that arrive during a
// scan collapse into one follow-up scan. Scans share no state. Watch returns
// nil when ctx is cancelled.
func (a *App) Watch(ctx context.Context, onScan ScanFunc) error {
	s := a.Settings

	trigger := make(chan string, 1)
	notify := func(reason string) {
		select {
		case trigger <- reason:
		default:
		}
	}

	if a.Watcher == nil {
		w, err := fsw.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		a.Watcher = w
	}
	paths := append([]string{s.DenyList}, s.Documents...)
	if err := a.Watcher.Watch(paths, notify); err != nil {
		return fmt.Errorf("watch inputs: %w", err)
	}
	defer a.Watcher.Stop()

	if s.Schedule != "" {
		tr, err := schedule.New(s.Schedule, func() { notify("schedule") })
		if err != nil {
			return err
		}
		tr.Start()
		defer tr.Stop()
		logging.Info().Str("schedule", tr.Expression()).Time("next", tr.Next(a.Now())).Msg("scheduled rescans enabled")
	}

	scan := func() {
		out, err := a.Scan(ctx)
		if ctx.Err() != nil {
			return
		}
		onScan(out, err)
	}

	scan()
	logging.Info().Int("files", len(paths)).Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case reason := <-trigger:
			logging.Info().Str("trigger", reason).Msg("rescanning")
			scan()
		}
	}
}
