package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func stubAfterFunc(t *testing.T) *[]func() {
	t.Helper()
	orig := afterFunc
	t.Cleanup(func() { afterFunc = orig })

	var callbacks []func()
	afterFunc = func(_ time.Duration, f func()) *time.Timer {
		callbacks = append(callbacks, f)
		timer := time.NewTimer(time.Hour)
		timer.Stop()
		return timer
	}
	return &callbacks
}

func TestDebouncerRunsOnlyLatestCallback(t *testing.T) {
	callbacks := stubAfterFunc(t)
	var called atomic.Int32
	d := New(time.Second, func() { called.Add(1) })

	d.Trigger()
	d.Trigger()
	d.Trigger()
	if len(*callbacks) != 3 {
		t.Fatalf("expected 3 scheduled callbacks, got %d", len(*callbacks))
	}
	for _, cb := range *callbacks {
		cb()
	}
	if got := called.Load(); got != 1 {
		t.Fatalf("expected one call, got %d", got)
	}
}

func TestDebouncerStopDropsPendingCallback(t *testing.T) {
	callbacks := stubAfterFunc(t)
	var called atomic.Int32
	d := New(time.Second, func() { called.Add(1) })

	d.Trigger()
	d.Stop()
	(*callbacks)[0]()
	if got := called.Load(); got != 0 {
		t.Fatalf("expected no call after stop, got %d", got)
	}
}

func TestDebouncerFiresAfterDelay(t *testing.T) {
	var count atomic.Int32
	done := make(chan struct{})
	d := New(10*time.Millisecond, func() {
		if count.Add(1) == 1 {
			close(done)
		}
	})
	d.Trigger()
	d.Trigger()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debouncer did not fire")
	}
	time.Sleep(30 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Fatalf("expected one call, got %d", got)
	}
}
