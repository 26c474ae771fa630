package service

import (
	"context"
	"errors"
	"testing"

	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/internal/node/service/mocks"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandleSet(t *testing.T) {
	errUnreachable := errors.New("connection refused")

	tests := []struct {
		name        string
		tolerance   int
		members     []membership.Node
		setup       func(peers *mocks.MockPeerClient)
		wantErr     error
		wantHolders []membership.Node
	}{
		{
			name:        "SingleNodeCommitsLocally",
			tolerance:   3,
			wantHolders: []membership.Node{leaderNode},
		},
		{
			name:      "SoleReplicaAcknowledges",
			tolerance: 1,
			members:   []membership.Node{peerA},
			setup: func(peers *mocks.MockPeerClient) {
				peers.EXPECT().Store(gomock.Any(), peerA, int32(42), "hi").Return(nil)
			},
			wantHolders: []membership.Node{peerA, leaderNode},
		},
		{
			name:      "SoleReplicaUnreachable",
			tolerance: 1,
			members:   []membership.Node{peerA},
			setup: func(peers *mocks.MockPeerClient) {
				peers.EXPECT().Store(gomock.Any(), peerA, int32(42), "hi").Return(errUnreachable)
			},
			wantErr: port.ErrReplicationFailed,
		},
		{
			name:      "PartialSuccessCommits",
			tolerance: 2,
			members:   []membership.Node{peerA, peerB},
			setup: func(peers *mocks.MockPeerClient) {
				gomock.InOrder(
					peers.EXPECT().Store(gomock.Any(), peerA, int32(42), "hi").Return(errUnreachable),
					peers.EXPECT().Store(gomock.Any(), peerB, int32(42), "hi").Return(nil),
				)
			},
			wantHolders: []membership.Node{peerB, leaderNode},
		},
		{
			name:      "AllSelectedFail",
			tolerance: 2,
			members:   []membership.Node{peerA, peerB, peerC},
			setup: func(peers *mocks.MockPeerClient) {
				peers.EXPECT().Store(gomock.Any(), peerA, int32(42), "hi").Return(errUnreachable)
				peers.EXPECT().Store(gomock.Any(), peerB, int32(42), "hi").Return(errUnreachable)
			},
			wantErr: port.ErrReplicationFailed,
		},
		{
			name:      "ToleranceAboveMembersUsesAll",
			tolerance: 5,
			members:   []membership.Node{peerA, peerB},
			setup: func(peers *mocks.MockPeerClient) {
				peers.EXPECT().Store(gomock.Any(), peerA, int32(42), "hi").Return(nil)
				peers.EXPECT().Store(gomock.Any(), peerB, int32(42), "hi").Return(nil)
			},
			wantHolders: []membership.Node{peerA, peerB, leaderNode},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNode(t, tt.tolerance, tt.members...)
			if tt.setup != nil {
				tt.setup(n.peers)
			}
			ctx := context.Background()

			err := n.svc.HandleSet(ctx, 42, "hi")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				_, getErr := n.store.Get(ctx, 42)
				assert.ErrorIs(t, getErr, port.ErrMessageNotFound)
				_, ok := n.svc.locations.Holders(42)
				assert.False(t, ok)
				return
			}

			require.NoError(t, err)
			text, getErr := n.store.Get(ctx, 42)
			require.NoError(t, getErr)
			assert.Equal(t, "hi", text)

			holders, ok := n.svc.locations.Holders(42)
			require.True(t, ok)
			assert.Equal(t, tt.wantHolders, holders)
		})
	}
}

func TestHandleSet_RotatesPeers(t *testing.T) {
	n := newTestNode(t, 1, peerA, peerB, peerC)
	ctx := context.Background()

	gomock.InOrder(
		n.peers.EXPECT().Store(gomock.Any(), peerA, int32(1), "x").Return(nil),
		n.peers.EXPECT().Store(gomock.Any(), peerB, int32(2), "x").Return(nil),
		n.peers.EXPECT().Store(gomock.Any(), peerC, int32(3), "x").Return(nil),
		n.peers.EXPECT().Store(gomock.Any(), peerA, int32(4), "x").Return(nil),
	)

	for id := int32(1); id <= 4; id++ {
		require.NoError(t, n.svc.HandleSet(ctx, id, "x"))
	}
}

func TestHandleSet_FailedThenGetNotFound(t *testing.T) {
	n := newTestNode(t, 1, peerA)
	ctx := context.Background()

	n.peers.EXPECT().Store(gomock.Any(), peerA, int32(9), "lost").Return(errors.New("down"))
	require.ErrorIs(t, n.svc.HandleSet(ctx, 9, "lost"), port.ErrReplicationFailed)

	_, err := n.svc.HandleGet(ctx, 9)
	assert.ErrorIs(t, err, port.ErrMessageNotFound)
}

func TestHandleSet_LocalStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockMessageStore(ctrl)
	n := newTestNode(t, 1)
	n.svc.store = store

	store.EXPECT().Put(gomock.Any(), int32(5), "x").Return(errors.New("disk full"))

	err := n.svc.HandleSet(context.Background(), 5, "x")
	require.ErrorIs(t, err, port.ErrLocalStore)
	assert.Contains(t, err.Error(), "disk full")

	_, ok := n.svc.locations.Holders(5)
	assert.False(t, ok)
}

func TestHandleSet_SingleNodeRoundTrip(t *testing.T) {
	n := newTestNode(t, 3)
	ctx := context.Background()

	texts := map[int32]string{
		1:          "hello world",
		-7:         "negative ids are fine",
		2147483647: "  padded  text ",
	}
	for id, text := range texts {
		require.NoError(t, n.svc.HandleSet(ctx, id, text))
	}
	for id, text := range texts {
		got, err := n.svc.HandleGet(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, text, got)
	}
}
