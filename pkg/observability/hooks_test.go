package observability

import (
	"context"
	"testing"
	"time"
)

type countingLayoutHooks struct {
	NoopLayoutHooks
	builds  int
	dropped int
}

func (h *countingLayoutHooks) OnBuildComplete(context.Context, string, int, int, time.Duration) {
	h.builds++
}

func (h *countingLayoutHooks) OnReservationDropped(context.Context, string, string) {
	h.dropped++
}

func TestSetAndResetHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingLayoutHooks{}
	SetLayoutHooks(h)

	Layout().OnBuildComplete(context.Background(), "2026-08-23", 4, 1, time.Millisecond)
	Layout().OnReservationDropped(context.Background(), "r9", "unparsable start time")

	if h.builds != 1 || h.dropped != 1 {
		t.Errorf("builds = %d, dropped = %d, want 1, 1", h.builds, h.dropped)
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() did not restore noop layout hooks")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)

	SetGestureHooks(nil)
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("nil registration should keep the noop implementation")
	}
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	// Must not panic.
	ctx := context.Background()
	Layout().OnBuildStart(ctx, "2026-08-23", 10)
	Gesture().OnReassign(ctx, "r1", 4)
	Cache().OnCacheHit(ctx, "layout")
	Store().OnStoreWrite(ctx, "2026-08-23", time.Millisecond, nil)
}
