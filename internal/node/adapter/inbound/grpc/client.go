package grpc_handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	familyv1 "github.com/anthanhphan/go-disk-register/api/family/v1"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/go-disk-register/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

// ClientAdapter implements port.PeerClient over gRPC.
type ClientAdapter struct {
	mu       sync.RWMutex
	conns    map[string]*grpc.ClientConn
	breakers *resilience.BreakerSet
	timeout  time.Duration
}

// NewClientAdapter creates a peer client. A positive timeout bounds every
// call that has no deadline of its own.
func NewClientAdapter(timeout time.Duration) *ClientAdapter {
	return &ClientAdapter{
		conns: make(map[string]*grpc.ClientConn),
		breakers: resilience.NewBreakerSet(resilience.BreakerConfig{
			FailureThreshold: 3,
			Cooldown:         5 * time.Second,
		}),
		timeout: timeout,
	}
}

// Ensure ClientAdapter implements PeerClient
var _ port.PeerClient = (*ClientAdapter)(nil)

func (c *ClientAdapter) getConn(addr string) (*grpc.ClientConn, error) {
	c.mu.RLock()
	conn, ok := c.conns[addr]
	c.mu.RUnlock()
	if ok {
		return conn, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if conn, ok := c.conns[addr]; ok {
		return conn, nil
	}

	newConn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(familyv1.CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c.conns[addr] = newConn
	return newConn, nil
}

// Join announces self to target and returns target's membership view.
func (c *ClientAdapter) Join(ctx context.Context, target, self membership.Node) ([]membership.Node, error) {
	var view []membership.Node
	err := c.withHealthCheck(ctx, target, "Join", func(callCtx context.Context, conn *grpc.ClientConn) error {
		resp, err := familyv1.NewFamilyServiceClient(conn).Join(callCtx, toNodeInfo(self))
		if err != nil {
			return err
		}
		view = fromFamilyView(resp)
		return nil
	})
	return view, err
}

// GetFamily returns target's membership view. It is the health check, so it
// always reaches the peer regardless of breaker state.
func (c *ClientAdapter) GetFamily(ctx context.Context, target membership.Node) ([]membership.Node, error) {
	var view []membership.Node
	err := c.withHealthCheck(ctx, target, "GetFamily", func(callCtx context.Context, conn *grpc.ClientConn) error {
		resp, err := familyv1.NewFamilyServiceClient(conn).GetFamily(callCtx, &familyv1.Empty{})
		if err != nil {
			return err
		}
		view = fromFamilyView(resp)
		return nil
	})
	return view, err
}

// Store asks target to persist a message. A peer that answers with a storage
// error is reachable and does not count against its breaker.
func (c *ClientAdapter) Store(ctx context.Context, target membership.Node, id int32, text string) error {
	var resp *familyv1.StoreResult
	err := c.withBreaker(ctx, target, "Store", func(callCtx context.Context, conn *grpc.ClientConn) error {
		var err error
		resp, err = familyv1.NewStorageServiceClient(conn).Store(callCtx, &familyv1.StoredMessage{Id: id, Text: text})
		return err
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("remote store failed: %s", resp.Error)
	}
	return nil
}

// Retrieve returns target's text for id; empty when target holds nothing.
func (c *ClientAdapter) Retrieve(ctx context.Context, target membership.Node, id int32) (string, error) {
	var text string
	err := c.withBreaker(ctx, target, "Retrieve", func(callCtx context.Context, conn *grpc.ClientConn) error {
		resp, err := familyv1.NewStorageServiceClient(conn).Retrieve(callCtx, &familyv1.MessageId{Id: id})
		if err != nil {
			return err
		}
		text = resp.Text
		return nil
	})
	return text, err
}

func (c *ClientAdapter) withBreaker(ctx context.Context, target membership.Node, op string, fn func(context.Context, *grpc.ClientConn) error) error {
	addr := target.Addr()

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := c.breakers.Get(addr).Do(callCtx, func(execCtx context.Context) error {
		conn, err := c.getConn(addr)
		if err != nil {
			return normalizeRPCErr(execCtx, err)
		}
		return normalizeRPCErr(execCtx, fn(execCtx, conn))
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		logger.Debugw("Peer RPC short-circuited", "op", op, "target", addr, "error", err.Error())
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	logger.Debugw("Peer RPC failed", "op", op, "target", addr, "error", err.Error())
	c.dropConn(addr)
	return err
}

// withHealthCheck calls target without consulting its breaker. A successful call
// proves the peer is reachable and closes the breaker.
func (c *ClientAdapter) withHealthCheck(ctx context.Context, target membership.Node, op string, fn func(context.Context, *grpc.ClientConn) error) error {
	addr := target.Addr()

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	conn, err := c.getConn(addr)
	if err == nil {
		err = fn(callCtx, conn)
	}
	err = normalizeRPCErr(callCtx, err)
	if err == nil {
		c.breakers.Get(addr).Reset()
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	logger.Debugw("Peer RPC failed", "op", op, "target", addr, "error", err.Error())
	c.dropConn(addr)
	return err
}

// Forget drops the cached connection and breaker for target.
func (c *ClientAdapter) Forget(target membership.Node) {
	addr := target.Addr()
	c.breakers.Forget(addr)
	c.dropConn(addr)
}

func (c *ClientAdapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *ClientAdapter) dropConn(addr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conn, ok := c.conns[addr]; ok {
		_ = conn.Close()
		delete(c.conns, addr)
	}
}

// Close closes all connections.
func (c *ClientAdapter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for addr, conn := range c.conns {
		_ = conn.Close()
		delete(c.conns, addr)
	}
	return nil
}

func normalizeRPCErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || status.Code(err) == codes.Canceled {
		return context.Canceled
	}
	if errors.Is(err, io.EOF) && ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		return context.Canceled
	}
	return err
}
