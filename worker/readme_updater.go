package worker

import (
	"context"
	"log/slog"
	"time"
)

// Writer produces the profile document; readme.Generator implements it.
type Writer interface {
	Write(ctx context.Context) (string, error)
}

// DefaultInterval is used when ReadmeUpdater.Interval is not positive.
const DefaultInterval = 24 * time.Hour

// ReadmeUpdater regenerates the profile document on a fixed interval.
type ReadmeUpdater struct {
	Generator Writer
	Interval  time.Duration
}

func (w *ReadmeUpdater) Start(ctx context.Context) error {
	interval := w.interval()
	// run immediately then on interval
	w.runOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ReadmeUpdater) interval() time.Duration {
	if w.Interval <= 0 {
		return DefaultInterval
	}
	return w.Interval
}

func (w *ReadmeUpdater) runOnce(ctx context.Context) {
	start := time.Now()
	path, err := w.Generator.Write(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("readme-updater: update failed", "error", err)
		return
	}
	slog.Info("readme-updater: updated", "path", path, "took", time.Since(start).Round(time.Millisecond))
}
