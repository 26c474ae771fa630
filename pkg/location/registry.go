package location

import (
	"encoding/binary"
	"sync"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the number of lock stripes used by NewRegistry.
const DefaultShardCount = 32

// Registry records which nodes hold a replica of each message id.
// Entries are striped across shards by murmur3 hash of the id so writers
// of unrelated ids do not contend on one lock.
type Registry struct {
	shards []*shard
}

type shard struct {
	mu      sync.RWMutex
	holders map[int32][]membership.Node
}

// NewRegistry creates an empty registry.
func NewRegistry(shardCount int) *Registry {
	if shardCount <= 0 {
		shardCount = DefaultShardCount
	}
	r := &Registry{shards: make([]*shard, shardCount)}
	for i := range r.shards {
		r.shards[i] = &shard{holders: make(map[int32][]membership.Node)}
	}
	return r
}

// Register overwrites the holder list for id. Last write wins.
func (r *Registry) Register(id int32, holders []membership.Node) {
	list := make([]membership.Node, len(holders))
	copy(list, holders)

	s := r.shardFor(id)
	s.mu.Lock()
	s.holders[id] = list
	s.mu.Unlock()
}

// Holders returns a copy of the holder list for id in registration order.
func (r *Registry) Holders(id int32) ([]membership.Node, bool) {
	s := r.shardFor(id)
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.holders[id]
	if !ok {
		return nil, false
	}
	out := make([]membership.Node, len(list))
	copy(out, list)
	return out, true
}

// Len returns the number of tracked message ids.
func (r *Registry) Len() int {
	total := 0
	for _, s := range r.shards {
		s.mu.RLock()
		total += len(s.holders)
		s.mu.RUnlock()
	}
	return total
}

// HolderCounts returns how many tracked ids each node holds.
func (r *Registry) HolderCounts() map[membership.Node]int {
	counts := make(map[membership.Node]int)
	for _, s := range r.shards {
		s.mu.RLock()
		for _, list := range s.holders {
			for _, n := range list {
				counts[n]++
			}
		}
		s.mu.RUnlock()
	}
	return counts
}

func (r *Registry) shardFor(id int32) *shard {
	return r.shards[shardIndex(id, len(r.shards))]
}

func shardIndex(id int32, shardCount int) int {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(id))         // #nosec G115
	return int(murmur3.Sum32(buf[:]) % uint32(shardCount)) // #nosec G115
}
