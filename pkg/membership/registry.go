package membership

import (
	"sync"
)

// Registry is the local view of the family: the set of known members.
// Snapshots are copies in insertion order and never alias internal state.
type Registry struct {
	mu      sync.RWMutex
	self    Node
	members []Node
	index   map[Node]struct{}
}

// NewRegistry creates a registry that already contains self.
func NewRegistry(self Node) *Registry {
	r := &Registry{
		self:  self,
		index: make(map[Node]struct{}),
	}
	r.addLocked(self)
	return r
}

// Self returns the identity of the local node.
func (r *Registry) Self() Node {
	return r.self
}

// Add inserts a member. It is a no-op if the member is already known.
// Returns true if the member was added.
func (r *Registry) Add(node Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(node)
}

// AddAll inserts every member under a single lock, so a concurrent Snapshot
// sees either none or all of them.
func (r *Registry) AddAll(nodes []Node) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, n := range nodes {
		if r.addLocked(n) {
			added++
		}
	}
	return added
}

// Remove deletes a member and reports whether it was present.
func (r *Registry) Remove(node Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[node]; !ok {
		return false
	}
	delete(r.index, node)

	kept := make([]Node, 0, len(r.members)-1)
	for _, m := range r.members {
		if m != node {
			kept = append(kept, m)
		}
	}
	r.members = kept
	return true
}

// Contains reports whether node is a known member.
func (r *Registry) Contains(node Node) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[node]
	return ok
}

// Len returns the number of known members, self included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Snapshot returns a point-in-time copy of the members.
func (r *Registry) Snapshot() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Node, len(r.members))
	copy(out, r.members)
	return out
}

// Others returns a snapshot without the local node.
func (r *Registry) Others() []Node {
	return Without(r.Snapshot(), r.self)
}

func (r *Registry) addLocked(node Node) bool {
	if node.IsZero() {
		return false
	}
	if _, ok := r.index[node]; ok {
		return false
	}
	r.index[node] = struct{}{}
	r.members = append(r.members, node)
	return true
}
