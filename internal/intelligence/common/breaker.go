package common

import (
	"sync"
	"time"
)

// BreakerState is the state of a Breaker.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// Breaker is a consecutive-failure circuit breaker. After maxFailures failed
// calls it rejects calls for cooldown, then lets a single probe through
// (half-open); the probe's outcome closes or re-opens the circuit.
type Breaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	maxFailures int
	cooldown    time.Duration
	openedAt    time.Time
	probing     bool
	now         func() time.Time
	onChange    func(from, to BreakerState)
}

// NewBreaker creates a closed breaker. maxFailures < 1 is treated as 1.
func NewBreaker(maxFailures int, cooldown time.Duration) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{maxFailures: maxFailures, cooldown: cooldown, now: time.Now}
}

// OnStateChange registers fn, called outside the breaker lock on every
// transition.
func (b *Breaker) OnStateChange(fn func(from, to BreakerState)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// State returns the current state, promoting open to half-open once the
// cooldown has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		return BreakerHalfOpen
	}
	return b.state
}

// Execute runs fn unless the circuit is open. It returns ErrCircuitOpen
// without calling fn when rejected.
func (b *Breaker) Execute(fn func() error) error {
	if !b.allow() {
		return ErrCircuitOpen
	}
	err := fn()
	b.record(err == nil)
	return err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	var from, to BreakerState
	changed := false
	allowed := false

	switch b.state {
	case BreakerClosed:
		allowed = true
	case BreakerOpen:
		if b.now().Sub(b.openedAt) >= b.cooldown {
			from, to, changed = b.state, BreakerHalfOpen, true
			b.state = BreakerHalfOpen
			b.probing = true
			allowed = true
		}
	case BreakerHalfOpen:
		if !b.probing {
			b.probing = true
			allowed = true
		}
	}
	cb := b.onChange
	b.mu.Unlock()

	if changed && cb != nil {
		cb(from, to)
	}
	return allowed
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	from := b.state
	if success {
		b.failures = 0
		b.state = BreakerClosed
	} else {
		b.failures++
		if b.state == BreakerHalfOpen || b.failures >= b.maxFailures {
			b.state = BreakerOpen
			b.openedAt = b.now()
		}
	}
	b.probing = false
	to := b.state
	cb := b.onChange
	b.mu.Unlock()

	if from != to && cb != nil {
		cb(from, to)
	}
}

//Personal.AI order the ending
