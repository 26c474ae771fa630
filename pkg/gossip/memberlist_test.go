package gossip

import (
	"testing"

	"github.com/hashicorp/memberlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
)

func TestNodeMetaRoundTrip(t *testing.T) {
	self := membership.NewNode("127.0.0.1", 5556)
	a := newAdapter(self, membership.NewRegistry(self))

	data := a.NodeMeta(memberlist.MetaMaxSize)
	require.NotEmpty(t, data)

	got, ok := decodeMeta(data)
	require.True(t, ok)
	assert.Equal(t, self, got)
}

func TestNodeMeta_OverLimit(t *testing.T) {
	a := newAdapter(membership.NewNode("127.0.0.1", 5556), nil)
	assert.Nil(t, a.NodeMeta(4))
}

func TestDecodeMeta_Invalid(t *testing.T) {
	for _, meta := range [][]byte{nil, []byte("{"), []byte(`{"rpc_host":"h"}`), []byte(`{"rpc_port":5555}`)} {
		_, ok := decodeMeta(meta)
		assert.False(t, ok, "meta %q", meta)
	}
}

func TestNotifyJoinAndLeave(t *testing.T) {
	self := membership.NewNode("127.0.0.1", 5555)
	peer := membership.NewNode("127.0.0.1", 5557)
	registry := membership.NewRegistry(self)
	a := newAdapter(self, registry)

	peerMeta := newAdapter(peer, nil).NodeMeta(memberlist.MetaMaxSize)
	selfMeta := a.NodeMeta(memberlist.MetaMaxSize)

	a.NotifyJoin(&memberlist.Node{Name: peer.Addr(), Meta: peerMeta})
	a.NotifyUpdate(&memberlist.Node{Name: peer.Addr(), Meta: peerMeta})
	a.NotifyJoin(&memberlist.Node{Name: "no-meta"})
	assert.Equal(t, []membership.Node{self, peer}, registry.Snapshot())

	a.NotifyLeave(&memberlist.Node{Name: self.Addr(), Meta: selfMeta})
	assert.True(t, registry.Contains(self))

	a.NotifyLeave(&memberlist.Node{Name: peer.Addr(), Meta: peerMeta})
	assert.Equal(t, []membership.Node{self}, registry.Snapshot())
}
