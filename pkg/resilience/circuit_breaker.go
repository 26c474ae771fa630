package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// OpenError is returned while a breaker rejects calls.
type OpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, max(e.RetryAfter, 0))
}

func (e *OpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// BreakerConfig tunes a Breaker. Zero values fall back to defaults.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold int
	// Cooldown is how long an open breaker rejects calls before letting one trial call through.
	Cooldown time.Duration
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = 3
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 5 * time.Second
	}
	return c
}

// Breaker guards calls to a single remote. After FailureThreshold
// consecutive failures it rejects calls for Cooldown, then admits exactly one
// trial call: success closes it, failure reopens it.
type Breaker struct {
	mu  sync.Mutex
	now func() time.Time

	name          string
	cfg           BreakerConfig
	state         State
	failures      int
	openUntil     time.Time
	trialInFlight bool
}

func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	return &Breaker{
		now:  time.Now,
		name: name,
		cfg:  cfg.withDefaults(),
	}
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && !b.now().Before(b.openUntil) {
		return StateHalfOpen
	}
	return b.state
}

// Do runs fn unless the breaker is open. Context cancellation by the caller
// is not counted against the remote.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn(ctx)
	b.record(err)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.state == StateOpen && !now.Before(b.openUntil) {
		b.state = StateHalfOpen
		b.trialInFlight = false
	}

	switch b.state {
	case StateOpen:
		return &OpenError{Name: b.name, RetryAfter: b.openUntil.Sub(now)}
	case StateHalfOpen:
		if b.trialInFlight {
			return &OpenError{Name: b.name}
		}
		b.trialInFlight = true
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		b.trialInFlight = false
		return
	}

	if err == nil {
		b.state = StateClosed
		b.failures = 0
		b.trialInFlight = false
		return
	}

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
		b.state = StateOpen
		b.openUntil = b.now().Add(b.cfg.Cooldown)
		b.failures = 0
		b.trialInFlight = false
	}
}

// Reset closes the breaker and clears its failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = StateClosed
	b.failures = 0
	b.trialInFlight = false
}

// BreakerSet hands out one Breaker per remote name.
type BreakerSet struct {
	mu       sync.Mutex
	cfg      BreakerConfig
	breakers map[string]*Breaker
}

func NewBreakerSet(cfg BreakerConfig) *BreakerSet {
	return &BreakerSet{
		cfg:      cfg,
		breakers: make(map[string]*Breaker),
	}
}

// Get returns the breaker for name, creating it on first use.
func (s *BreakerSet) Get(name string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.breakers[name]; ok {
		return b
	}
	b := NewBreaker(name, s.cfg)
	s.breakers[name] = b
	return b
}

// Forget drops the breaker for name.
func (s *BreakerSet) Forget(name string) {
	s.mu.Lock()
	delete(s.breakers, name)
	s.mu.Unlock()
}
