package util

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"    // 정상 작동
	CircuitStateOpen     CircuitState = "OPEN"      // 서비스 차단
	CircuitStateHalfOpen CircuitState = "HALF_OPEN" // 복구 시도 중
)

func (s CircuitState) String() string {
	return string(s)
}

// HealthCheckFunc reports whether the guarded service answers again.
type HealthCheckFunc func(ctx context.Context) bool

type CircuitBreakerOption func(*CircuitBreaker)

// WithHealthCheck makes an OPEN circuit check the service instead of waiting for the reset timeout.
func WithHealthCheck(fn HealthCheckFunc, interval, timeout time.Duration) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.healthCheckFn = fn
		cb.healthCheckInterval = interval
		cb.healthCheckTimeout = timeout
	}
}

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) CircuitBreakerOption {
	return func(cb *CircuitBreaker) {
		cb.now = now
	}
}

// CircuitBreaker stops calls to a provider after consecutive failures.
type CircuitBreaker struct {
	name                string
	state               CircuitState
	failureCount        int
	failureThreshold    int
	resetTimeout        time.Duration
	nextRetryTime       time.Time
	nextHealthCheckTime time.Time
	healthCheckInterval time.Duration
	healthCheckTimeout  time.Duration
	isHealthChecking    bool
	healthCheckFn       HealthCheckFunc
	now                 func() time.Time
	logger              *zap.Logger
	mu                  sync.Mutex
}

func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration, logger *zap.Logger, opts ...CircuitBreakerOption) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	cb := &CircuitBreaker{
		name:             name,
		state:            CircuitStateClosed,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		now:              time.Now,
		logger:           logger.With(zap.String("circuit", name)),
	}
	for _, opt := range opts {
		opt(cb)
	}
	return cb
}

// State returns the current state, moving OPEN to HALF_OPEN once the retry window has passed.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen {
		now := cb.now()
		if cb.healthCheckFn != nil {
			if now.After(cb.nextHealthCheckTime) && !cb.isHealthChecking {
				cb.isHealthChecking = true
				go cb.runHealthCheck()
			}
		} else if !now.Before(cb.nextRetryTime) {
			cb.transitionTo(CircuitStateHalfOpen)
		}
	}

	return cb.state
}

func (cb *CircuitBreaker) CanExecute() bool {
	return cb.State() != CircuitStateOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch {
	case cb.state == CircuitStateHalfOpen:
		cb.logger.Info("Circuit Breaker: Service recovered")
		cb.failureCount = 0
		cb.transitionTo(CircuitStateClosed)
	case cb.failureCount > 0:
		cb.logger.Debug("Circuit Breaker: Resetting failure count", zap.Int("was", cb.failureCount))
		cb.failureCount = 0
	}
}

// RecordFailure counts a failure. A positive customTimeout overrides the reset timeout
// for this opening, e.g. for rate limits.
func (cb *CircuitBreaker) RecordFailure(customTimeout time.Duration) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++

	timeout := cb.resetTimeout
	if customTimeout > 0 {
		timeout = customTimeout
	}

	cb.logger.Warn("Circuit Breaker: Failure recorded",
		zap.Int("count", cb.failureCount),
		zap.Int("threshold", cb.failureThreshold),
		zap.Duration("timeout", timeout),
	)

	if cb.state == CircuitStateHalfOpen || cb.failureCount >= cb.failureThreshold {
		now := cb.now()
		cb.nextRetryTime = now.Add(timeout)
		if cb.healthCheckFn != nil {
			cb.nextHealthCheckTime = now.Add(cb.healthCheckInterval)
		}
		cb.transitionTo(CircuitStateOpen)
	}
}

func (cb *CircuitBreaker) runHealthCheck() {
	timeout := cb.healthCheckTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cb.logger.Info("Circuit Breaker: Running health check")
	healthy := cb.healthCheckFn(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.isHealthChecking = false

	if cb.state != CircuitStateOpen {
		return
	}
	if healthy {
		cb.transitionTo(CircuitStateHalfOpen)
		return
	}
	cb.logger.Warn("Circuit Breaker: Health check failed")
	cb.nextHealthCheckTime = cb.now().Add(cb.healthCheckInterval)
}

// transitionTo must be called with the lock held.
func (cb *CircuitBreaker) transitionTo(newState CircuitState) {
	oldState := cb.state
	cb.state = newState

	fields := []zap.Field{
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
		zap.Int("failure_count", cb.failureCount),
	}
	if newState == CircuitStateOpen {
		fields = append(fields, zap.Time("next_retry", cb.nextRetryTime))
	}
	cb.logger.Info("Circuit Breaker: State transition", fields...)
}

func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = CircuitStateClosed
	cb.failureCount = 0
	cb.nextRetryTime = time.Time{}
}

type CircuitBreakerStatus struct {
	Name          string
	State         CircuitState
	FailureCount  int
	NextRetryTime *time.Time
}

func (cb *CircuitBreaker) Status() CircuitBreakerStatus {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	status := CircuitBreakerStatus{
		Name:         cb.name,
		State:        cb.state,
		FailureCount: cb.failureCount,
	}
	if cb.state == CircuitStateOpen {
		next := cb.nextRetryTime
		status.NextRetryTime = &next
	}
	return status
}
