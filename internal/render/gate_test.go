package render

import (
	"context"
	"testing"
	"time"
)

func TestGateBoundsConcurrentSessions(t *testing.T) {
	g := NewGate(1, 0)

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	// Second acquire must block until release.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := g.Acquire(ctx); err == nil {
		t.Fatal("expected second Acquire to block and time out")
	}

	g.Release()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel2()
	if err := g.Acquire(ctx2); err != nil {
		t.Fatalf("Acquire after Release failed: %v", err)
	}
	g.Release()
}

func TestGateUnbounded(t *testing.T) {
	g := NewGate(0, 0)

	for i := 0; i < 10; i++ {
		if err := g.Acquire(context.Background()); err != nil {
			t.Fatalf("unbounded Acquire %d failed: %v", i, err)
		}
	}
	for i := 0; i < 10; i++ {
		g.Release()
	}
}

func TestGateRespectsCancellation(t *testing.T) {
	g := NewGate(1, 0)

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer g.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Acquire(ctx); err == nil {
		t.Fatal("expected Acquire with canceled context to fail")
	}
}

func TestGateLaunchRate(t *testing.T) {
	// 10 launches/sec with burst 1: the second acquire waits ~100ms.
	g := NewGate(0, 10)

	start := time.Now()
	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected the launch rate to delay the second acquire, elapsed %v", elapsed)
	}
}
