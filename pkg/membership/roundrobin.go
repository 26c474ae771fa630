package membership

import "sync"

// RoundRobin hands out replica targets circularly across calls.
// Select and the cursor advance happen under one lock so concurrent
// writers never receive overlapping or skipped selections.
type RoundRobin struct {
	mu     sync.Mutex
	cursor int
}

// NewRoundRobin creates a selector starting at offset zero.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Select picks up to n members starting at the cursor and advances the
// cursor by the number picked, modulo len(members).
func (rr *RoundRobin) Select(members []Node, n int) []Node {
	if len(members) == 0 || n <= 0 {
		return nil
	}

	rr.mu.Lock()
	defer rr.mu.Unlock()

	count := min(n, len(members))
	selected := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		selected = append(selected, members[(rr.cursor+i)%len(members)])
	}
	rr.cursor = (rr.cursor + count) % max(1, len(members))

	return selected
}

// Cursor returns the current offset.
func (rr *RoundRobin) Cursor() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.cursor
}
