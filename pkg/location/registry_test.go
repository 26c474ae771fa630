package location

import (
	"sync"
	"testing"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	leader = membership.NewNode("127.0.0.1", 5555)
	peerA  = membership.NewNode("127.0.0.1", 5556)
	peerB  = membership.NewNode("127.0.0.1", 5557)
)

func TestRegistry_RegisterAndHolders(t *testing.T) {
	r := NewRegistry(0)

	r.Register(42, []membership.Node{peerA, leader})

	holders, ok := r.Holders(42)
	require.True(t, ok)
	assert.Equal(t, []membership.Node{peerA, leader}, holders)

	_, ok = r.Holders(7)
	assert.False(t, ok)
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := NewRegistry(4)

	r.Register(1, []membership.Node{peerA, leader})
	r.Register(1, []membership.Node{peerB, leader})

	holders, ok := r.Holders(1)
	require.True(t, ok)
	assert.Equal(t, []membership.Node{peerB, leader}, holders)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_CopiesOnRegisterAndRead(t *testing.T) {
	r := NewRegistry(4)
	in := []membership.Node{peerA, leader}
	r.Register(1, in)
	in[0] = peerB

	out, _ := r.Holders(1)
	assert.Equal(t, peerA, out[0])

	out[0] = peerB
	again, _ := r.Holders(1)
	assert.Equal(t, peerA, again[0])
}

func TestRegistry_HolderCounts(t *testing.T) {
	r := NewRegistry(8)
	r.Register(1, []membership.Node{peerA, leader})
	r.Register(2, []membership.Node{peerB, leader})
	r.Register(3, []membership.Node{leader})

	counts := r.HolderCounts()
	assert.Equal(t, 3, counts[leader])
	assert.Equal(t, 1, counts[peerA])
	assert.Equal(t, 1, counts[peerB])
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	r := NewRegistry(0)

	var wg sync.WaitGroup
	for i := int32(0); i < 100; i++ {
		wg.Add(1)
		go func(id int32) {
			defer wg.Done()
			r.Register(id, []membership.Node{leader})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, r.Len())
}

func TestShardIndex_InRange(t *testing.T) {
	for _, id := range []int32{-5, 0, 1, 42, 1 << 30} {
		idx := shardIndex(id, 7)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 7)
	}
}
