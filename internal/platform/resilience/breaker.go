package resilience

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrOpen is matched by every rejection a Breaker returns.
var ErrOpen = errors.New("circuit breaker is open")

// OpenError reports which breaker rejected the call and when it will next
// admit a probe.
type OpenError struct {
	Key        string
	RetryAfter time.Duration
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("circuit breaker %q is open, retry after %s", e.Key, e.RetryAfter.Round(time.Millisecond))
}

func (e *OpenError) Is(target error) bool { return target == ErrOpen }

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// BreakerConfig tunes one breaker. Zero fields take the defaults.
type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenProbes < 1 {
		c.HalfOpenProbes = 2
	}
	return c
}

// Breaker opens after FailureThreshold consecutive counted failures, waits
// OpenTimeout, then closes again once HalfOpenProbes probes succeed. Any
// failed probe reopens it.
type Breaker struct {
	key      string
	cfg      BreakerConfig
	now      func() time.Time
	onChange func(key string, from, to State)

	mu        sync.Mutex
	state     State
	failures  int
	openedAt  time.Time
	inFlight  int
	succeeded int
}

func NewBreaker(key string, cfg BreakerConfig) *Breaker {
	return &Breaker{key: key, cfg: cfg.withDefaults(), now: time.Now, state: StateClosed}
}

// Do runs fn when the breaker admits it. counts reports whether an error
// is the origin's fault; nil counts every error. Uncounted errors settle a
// probe as a success.
func (b *Breaker) Do(fn func() error, counts func(error) bool) error {
	if err := b.admit(); err != nil {
		return err
	}
	err := fn()
	b.settle(err == nil || (counts != nil && !counts(err)))
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.cooledDown() {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if !b.cooledDown() {
			return &OpenError{Key: b.key, RetryAfter: b.cfg.OpenTimeout - b.now().Sub(b.openedAt)}
		}
		b.moveTo(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight+b.succeeded >= b.cfg.HalfOpenProbes {
			return &OpenError{Key: b.key}
		}
		b.inFlight++
	}
	return nil
}

func (b *Breaker) settle(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if ok {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(StateOpen)
		}
	case StateHalfOpen:
		b.inFlight = max(b.inFlight-1, 0)
		if !ok {
			b.moveTo(StateOpen)
			return
		}
		b.succeeded++
		if b.succeeded >= b.cfg.HalfOpenProbes {
			b.moveTo(StateClosed)
		}
	case StateOpen:
		// A call admitted before the breaker opened finished late.
		if !ok {
			b.openedAt = b.now()
		}
	}
}

func (b *Breaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

// moveTo must be called with mu held.
func (b *Breaker) moveTo(next State) {
	prev := b.state
	b.state = next
	b.failures, b.inFlight, b.succeeded = 0, 0, 0
	if next == StateOpen {
		b.openedAt = b.now()
	}
	if b.onChange != nil && prev != next {
		b.onChange(b.key, prev, next)
	}
}
