package membership

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func peers(n int) []Node {
	out := make([]Node, n)
	for i := range out {
		out[i] = NewNode("127.0.0.1", 5556+i)
	}
	return out
}

func TestRoundRobin_SelectsDistinctAndAdvances(t *testing.T) {
	rr := NewRoundRobin()
	members := peers(5)

	first := rr.Select(members, 3)
	assert.Equal(t, members[0:3], first)
	assert.Equal(t, 3, rr.Cursor())

	second := rr.Select(members, 3)
	assert.Equal(t, []Node{members[3], members[4], members[0]}, second)
	assert.Equal(t, 1, rr.Cursor())
}

func TestRoundRobin_EveryPeerOncePerCycle(t *testing.T) {
	rr := NewRoundRobin()
	members := peers(4)

	counts := make(map[Node]int)
	for i := 0; i < len(members); i++ {
		selected := rr.Select(members, 1)
		assert.Len(t, selected, 1)
		counts[selected[0]]++
	}

	for _, m := range members {
		assert.Equal(t, 1, counts[m], "peer %s", m)
	}
	assert.Equal(t, 0, rr.Cursor())
}

func TestRoundRobin_ToleranceLargerThanMembers(t *testing.T) {
	rr := NewRoundRobin()
	members := peers(2)

	selected := rr.Select(members, 5)
	assert.ElementsMatch(t, members, selected)
	assert.Equal(t, 0, rr.Cursor())
}

func TestRoundRobin_EmptyMembers(t *testing.T) {
	rr := NewRoundRobin()
	rr.Select(peers(3), 2)

	assert.Empty(t, rr.Select(nil, 3))
	assert.Equal(t, 2, rr.Cursor())
}

func TestRoundRobin_ShrinkingMembership(t *testing.T) {
	rr := NewRoundRobin()
	rr.Select(peers(5), 4)

	members := peers(2)
	selected := rr.Select(members, 1)
	assert.Equal(t, []Node{members[0]}, selected)
	assert.Equal(t, 1, rr.Cursor())
}

func TestRoundRobin_ConcurrentSelectionsCoverEvenly(t *testing.T) {
	rr := NewRoundRobin()
	members := peers(4)

	var (
		mu     sync.Mutex
		counts = make(map[Node]int)
		wg     sync.WaitGroup
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range rr.Select(members, 1) {
				mu.Lock()
				counts[n]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for _, m := range members {
		assert.Equal(t, 10, counts[m], "peer %s", m)
	}
}
