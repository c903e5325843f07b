package util

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCircuitBreakerOpensAtThreshold(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("gemini", 3, 30*time.Second, zap.NewNop(), WithClock(clock.Now))

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	if !cb.CanExecute() {
		t.Fatalf("circuit should stay closed below threshold")
	}

	cb.RecordFailure(0)
	if cb.CanExecute() {
		t.Fatalf("circuit should open at threshold")
	}
	if status := cb.Status(); status.State != CircuitStateOpen || status.NextRetryTime == nil {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestCircuitBreakerHalfOpenAfterTimeout(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("gemini", 1, 30*time.Second, zap.NewNop(), WithClock(clock.Now))

	cb.RecordFailure(0)
	clock.Advance(29 * time.Second)
	if cb.State() != CircuitStateOpen {
		t.Fatalf("expected OPEN before timeout")
	}

	clock.Advance(time.Second)
	if cb.State() != CircuitStateHalfOpen {
		t.Fatalf("expected HALF_OPEN after timeout")
	}

	cb.RecordSuccess()
	if cb.State() != CircuitStateClosed {
		t.Fatalf("expected CLOSED after success in HALF_OPEN")
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("openai", 2, time.Minute, zap.NewNop(), WithClock(clock.Now))

	cb.RecordFailure(0)
	cb.RecordFailure(0)
	clock.Advance(time.Minute)
	if cb.State() != CircuitStateHalfOpen {
		t.Fatalf("expected HALF_OPEN")
	}

	cb.RecordFailure(time.Hour)
	clock.Advance(30 * time.Minute)
	if cb.CanExecute() {
		t.Fatalf("custom timeout should keep the circuit open")
	}
}

func TestCircuitBreakerHealthCheck(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	checked := make(chan struct{}, 1)
	cb := NewCircuitBreaker("gemini", 1, time.Hour, zap.NewNop(),
		WithClock(clock.Now),
		WithHealthCheck(func(ctx context.Context) bool {
			checked <- struct{}{}
			return true
		}, time.Minute, time.Second),
	)

	cb.RecordFailure(0)
	clock.Advance(2 * time.Minute)
	_ = cb.State()

	select {
	case <-checked:
	case <-time.After(2 * time.Second):
		t.Fatalf("health check was not triggered")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cb.Status().State == CircuitStateHalfOpen {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected HALF_OPEN after healthy check, got %s", cb.Status().State)
}

func TestCircuitBreakerReset(t *testing.T) {
	cb := NewCircuitBreaker("gemini", 1, time.Hour, zap.NewNop())
	cb.RecordFailure(0)
	cb.Reset()
	if !cb.CanExecute() || cb.Status().FailureCount != 0 {
		t.Fatalf("reset should close the circuit")
	}
}
