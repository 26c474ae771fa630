package port

import (
	"context"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
)

//go:generate mockgen -destination=../service/mocks/peer_mock.go -package=mocks -source=peer.go

// PeerClient issues RPCs to other family nodes. Every call is a blocking
// point-to-point request; connect or transport failure is returned as an error.
type PeerClient interface {
	// Join announces self to target and returns the target's membership view.
	Join(ctx context.Context, target membership.Node, self membership.Node) ([]membership.Node, error)

	// GetFamily returns target's membership view. Used as a health check.
	GetFamily(ctx context.Context, target membership.Node) ([]membership.Node, error)

	// Store asks target to persist a message.
	Store(ctx context.Context, target membership.Node, id int32, text string) error

	// Retrieve returns the text target holds for id; empty when absent.
	Retrieve(ctx context.Context, target membership.Node, id int32) (string, error)

	// Forget drops any connection and failure history kept for target.
	Forget(target membership.Node)
}
