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

func TestHandleGet(t *testing.T) {
	tests := []struct {
		name    string
		holders []membership.Node
		setup   func(peers *mocks.MockPeerClient)
		want    string
		wantErr error
	}{
		{
			name:    "NoLocation",
			wantErr: port.ErrMessageNotFound,
		},
		{
			name:    "ReachableHolder",
			holders: []membership.Node{peerA, leaderNode},
			setup: func(peers *mocks.MockPeerClient) {
				peers.EXPECT().Retrieve(gomock.Any(), peerA, int32(3)).Return("remote", nil)
			},
			want: "remote",
		},
		{
			name:    "FirstHolderDownSecondAnswers",
			holders: []membership.Node{peerA, peerB, leaderNode},
			setup: func(peers *mocks.MockPeerClient) {
				gomock.InOrder(
					peers.EXPECT().Retrieve(gomock.Any(), peerA, int32(3)).Return("", errors.New("down")),
					peers.EXPECT().Retrieve(gomock.Any(), peerB, int32(3)).Return("from b", nil),
				)
			},
			want: "from b",
		},
		{
			name:    "EmptyAnswerSkipped",
			holders: []membership.Node{peerA, peerB},
			setup: func(peers *mocks.MockPeerClient) {
				gomock.InOrder(
					peers.EXPECT().Retrieve(gomock.Any(), peerA, int32(3)).Return("", nil),
					peers.EXPECT().Retrieve(gomock.Any(), peerB, int32(3)).Return("from b", nil),
				)
			},
			want: "from b",
		},
		{
			name:    "AllHoldersUnreachableOrEmpty",
			holders: []membership.Node{peerA, peerB, leaderNode},
			setup: func(peers *mocks.MockPeerClient) {
				peers.EXPECT().Retrieve(gomock.Any(), peerA, int32(3)).Return("", errors.New("down"))
				peers.EXPECT().Retrieve(gomock.Any(), peerB, int32(3)).Return("", nil)
			},
			wantErr: port.ErrMessageNotFound,
		},
		{
			name:    "OnlySelfRecorded",
			holders: []membership.Node{leaderNode},
			wantErr: port.ErrMessageNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNode(t, 1, peerA, peerB)
			if tt.setup != nil {
				tt.setup(n.peers)
			}
			if tt.holders != nil {
				n.svc.locations.Register(3, tt.holders)
			}

			got, err := n.svc.HandleGet(context.Background(), 3)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleGet_LocalHitSkipsPeers(t *testing.T) {
	n := newTestNode(t, 1, peerA)
	ctx := context.Background()

	require.NoError(t, n.store.Put(ctx, 11, "local"))
	n.svc.locations.Register(11, []membership.Node{peerA, leaderNode})

	got, err := n.svc.HandleGet(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, "local", got)
}

func TestHandleGet_LocalErrorFallsBackToHolders(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockMessageStore(ctrl)
	n := newTestNode(t, 1, peerA)
	n.svc.store = store

	store.EXPECT().Get(gomock.Any(), int32(4)).Return("", errors.New("io error"))
	n.peers.EXPECT().Retrieve(gomock.Any(), peerA, int32(4)).Return("remote", nil)
	n.svc.locations.Register(4, []membership.Node{peerA})

	got, err := n.svc.HandleGet(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "remote", got)
}
