package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-disk-register/internal/node/domain"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
)

var ErrReplicationFailed = errors.New("could not replicate to enough members")

// FamilyService serves the membership side of the peer RPC surface.
type FamilyService interface {
	// Join records caller as a member and returns the full membership view.
	Join(ctx context.Context, caller membership.Node) []membership.Node

	// Family returns the current membership view.
	Family(ctx context.Context) []membership.Node
}

// MessageService serves the storage side of the peer RPC surface.
type MessageService interface {
	// StoreMessage persists a message in the local store.
	StoreMessage(ctx context.Context, id int32, text string) error

	// RetrieveMessage reads a message from the local store.
	RetrieveMessage(ctx context.Context, id int32) (string, error)
}

// LeaderService orchestrates client writes and reads on the leader.
type LeaderService interface {
	// HandleSet replicates a message and commits it locally.
	// Returns ErrReplicationFailed when no selected peer acknowledged the write.
	HandleSet(ctx context.Context, id int32, text string) error

	// HandleGet returns the message text, or ErrMessageNotFound.
	HandleGet(ctx context.Context, id int32) (string, error)
}

// StatusService summarizes the node for reporters and the admin surface.
type StatusService interface {
	Status(ctx context.Context) domain.NodeStatus
}

// NodeService is the full surface of one family node.
type NodeService interface {
	FamilyService
	MessageService
	LeaderService
	StatusService
}
