package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type countingWriter struct {
	mu    sync.Mutex
	calls int
	fail  bool
	done  chan struct{}
	want  int
}

func (c *countingWriter) Write(context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls == c.want {
		close(c.done)
	}
	if c.fail {
		return "", errors.New("registry down")
	}
	return "README.md", nil
}

func TestReadmeUpdaterRunsImmediatelyAndOnTick(t *testing.T) {
	cw := &countingWriter{done: make(chan struct{}), want: 3, fail: true}
	w := &ReadmeUpdater{Generator: cw, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Start(ctx) }()

	select {
	case <-cw.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("updater did not keep running after failures")
	}
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("updater did not stop after cancel")
	}
}

func TestReadmeUpdaterDefaultsInterval(t *testing.T) {
	cw := &countingWriter{done: make(chan struct{}), want: 1}
	w := &ReadmeUpdater{Generator: cw}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Start(ctx) }()
	<-cw.done
	cancel()
	if err := <-errc; err != nil {
		t.Fatalf("Start returned %v", err)
	}
	if w.Interval != 0 {
		t.Fatalf("Start changed Interval to %s", w.Interval)
	}
	if got := w.interval(); got != DefaultInterval {
		t.Fatalf("interval = %s, want %s", got, DefaultInterval)
	}
}
