package port

import (
	"context"
	"errors"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrLocalStore      = errors.New("local store failed")
)

//go:generate mockgen -destination=../service/mocks/storage_mock.go -package=mocks -source=storage.go

// MessageStore persists message text by integer id on the local node.
// Re-storing an id overwrites it. Implementations must be safe for concurrent use.
type MessageStore interface {
	// Put stores text under id.
	Put(ctx context.Context, id int32, text string) error

	// Get returns the text stored under id, or ErrMessageNotFound.
	Get(ctx context.Context, id int32) (string, error)

	// Count returns the number of stored messages.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying resources.
	Close() error
}
