package service

import (
	"context"
	"time"

	"github.com/anthanhphan/go-disk-register/internal/node/domain"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/pkg/location"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
)

// NodeServiceImpl is a facade that composes the family node use-case services.
type NodeServiceImpl struct {
	registry  *membership.Registry
	locations *location.Registry
	selector  *membership.RoundRobin
	store     port.MessageStore
	peers     port.PeerClient
	role      domain.Role
	tolerance int

	family     *familyService
	messageOps *messageOpsService
	replicator *replicationService
	router     *readRouterService
	discovery  *discoveryService
	health     *healthService
	reporter   *reportService
}

// Ensure NodeServiceImpl implements port.NodeService.
var _ port.NodeService = (*NodeServiceImpl)(nil)

// NewNodeService builds the node facade and all use-case services.
// The local identity is taken from registry.Self().
func NewNodeService(
	registry *membership.Registry,
	locations *location.Registry,
	store port.MessageStore,
	peers port.PeerClient,
	role domain.Role,
	tolerance int,
) *NodeServiceImpl {
	svc := &NodeServiceImpl{
		registry:  registry,
		locations: locations,
		selector:  membership.NewRoundRobin(),
		store:     store,
		peers:     peers,
		role:      role,
		tolerance: max(tolerance, 1),
	}

	svc.family = newFamilyService(svc)
	svc.messageOps = newMessageOpsService(svc)
	svc.replicator = newReplicationService(svc)
	svc.router = newReadRouterService(svc)
	svc.discovery = newDiscoveryService(svc)
	svc.health = newHealthService(svc)
	svc.reporter = newReportService(svc)

	return svc
}

// Self returns the local node identity.
func (s *NodeServiceImpl) Self() membership.Node {
	return s.registry.Self()
}

// Role returns the static role resolved at startup.
func (s *NodeServiceImpl) Role() domain.Role {
	return s.role
}

// Join records a joining node and returns the membership view.
func (s *NodeServiceImpl) Join(ctx context.Context, caller membership.Node) []membership.Node {
	return s.family.join(ctx, caller)
}

// Family returns the membership view.
func (s *NodeServiceImpl) Family(ctx context.Context) []membership.Node {
	return s.family.view(ctx)
}

// StoreMessage persists a message replicated by the leader.
func (s *NodeServiceImpl) StoreMessage(ctx context.Context, id int32, text string) error {
	return s.messageOps.storeMessage(ctx, id, text)
}

// RetrieveMessage reads a message from the local store.
func (s *NodeServiceImpl) RetrieveMessage(ctx context.Context, id int32) (string, error) {
	return s.messageOps.retrieveMessage(ctx, id)
}

// HandleSet replicates a client write and commits it locally.
func (s *NodeServiceImpl) HandleSet(ctx context.Context, id int32, text string) error {
	return s.replicator.handleSet(ctx, id, text)
}

// HandleGet serves a client read from the local store or a recorded holder.
func (s *NodeServiceImpl) HandleGet(ctx context.Context, id int32) (string, error) {
	return s.router.handleGet(ctx, id)
}

// Status summarizes the node.
func (s *NodeServiceImpl) Status(ctx context.Context) domain.NodeStatus {
	return s.reporter.status(ctx)
}

// Discover joins every lower well-known port once. Returns the number of
// nodes that answered.
func (s *NodeServiceImpl) Discover(ctx context.Context, basePort int) int {
	return s.discovery.discover(ctx, basePort)
}

// CheckHealth runs one health-check round and returns the evicted members.
func (s *NodeServiceImpl) CheckHealth(ctx context.Context) []membership.Node {
	return s.health.checkOnce(ctx)
}

// StartHealthChecker checks the family periodically until ctx is done.
func (s *NodeServiceImpl) StartHealthChecker(ctx context.Context, warmup, interval time.Duration) {
	s.health.startWorker(ctx, warmup, interval)
}

// StartFamilyReporter logs the membership view periodically until ctx is done.
func (s *NodeServiceImpl) StartFamilyReporter(ctx context.Context, initialDelay, interval time.Duration) {
	runPeriodic(ctx, initialDelay, interval, s.reporter.logFamily)
}

// StartLeaderReporter logs message placement periodically until ctx is done.
func (s *NodeServiceImpl) StartLeaderReporter(ctx context.Context, initialDelay, interval time.Duration) {
	runPeriodic(ctx, initialDelay, interval, s.reporter.logLeaderStatus)
}
