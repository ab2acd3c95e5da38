package resilience

import (
	"sort"
	"sync"
	"time"
)

// Group hands out one Breaker per key, created on first use. Dataset
// fetchers key it by origin host so one failing host does not block the
// others.
type Group struct {
	cfg      BreakerConfig
	now      func() time.Time
	onChange func(key string, from, to State)

	mu       sync.Mutex
	breakers map[string]*Breaker
}

// NewGroup builds a group; onChange, when set, observes every state change
// of every breaker and is called with that breaker's lock held.
func NewGroup(cfg BreakerConfig, onChange func(key string, from, to State)) *Group {
	return &Group{
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		onChange: onChange,
		breakers: make(map[string]*Breaker),
	}
}

func (g *Group) Breaker(key string) *Breaker {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.breakers[key]
	if !ok {
		b = NewBreaker(key, g.cfg)
		b.now = g.now
		b.onChange = g.onChange
		g.breakers[key] = b
	}
	return b
}

func (g *Group) Do(key string, fn func() error, counts func(error) bool) error {
	return g.Breaker(key).Do(fn, counts)
}

// Keys lists the keys seen so far in sorted order.
func (g *Group) Keys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	keys := make([]string, 0, len(g.breakers))
	for key := range g.breakers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
