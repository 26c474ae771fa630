package gossip

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/hashicorp/memberlist"
)

// Membership is the registry gossip events are applied to.
type Membership interface {
	Add(node membership.Node) bool
	Remove(node membership.Node) bool
}

// Adapter feeds memberlist join/leave events into a Membership. Each node
// advertises the host and port of its RPC endpoint in its gossip metadata.
type Adapter struct {
	list    *memberlist.Memberlist
	members Membership
	self    membership.Node
}

var (
	_ memberlist.Delegate      = (*Adapter)(nil)
	_ memberlist.EventDelegate = (*Adapter)(nil)
)

type nodeMeta struct {
	Host string `json:"rpc_host"`
	Port int    `json:"rpc_port"`
}

// NewAdapter starts a memberlist agent on bindPort for the node whose RPC
// endpoint is self.
func NewAdapter(self membership.Node, bindAddr string, bindPort int, members Membership) (*Adapter, error) {
	adapter := newAdapter(self, members)

	config := memberlist.DefaultLANConfig()
	config.Name = self.Addr()
	config.BindAddr = bindAddr
	config.BindPort = bindPort
	config.AdvertisePort = bindPort
	config.LogOutput = io.Discard
	config.Events = adapter
	config.Delegate = adapter

	list, err := memberlist.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create memberlist: %w", err)
	}
	adapter.list = list

	return adapter, nil
}

func newAdapter(self membership.Node, members Membership) *Adapter {
	return &Adapter{self: self, members: members}
}

// Join contacts the seeds. It succeeds if at least one seed answered.
func (a *Adapter) Join(seeds []string) (int, error) {
	if len(seeds) == 0 {
		return 0, nil
	}
	n, err := a.list.Join(seeds)
	if err != nil {
		return n, fmt.Errorf("failed to join gossip cluster: %w", err)
	}
	return n, nil
}

// Leave announces departure and stops the agent.
func (a *Adapter) Leave(timeout time.Duration) error {
	if err := a.list.Leave(timeout); err != nil {
		_ = a.list.Shutdown()
		return err
	}
	return a.list.Shutdown()
}

// NodeMeta returns the local node metadata.
func (a *Adapter) NodeMeta(limit int) []byte {
	data, err := json.Marshal(nodeMeta{Host: a.self.Host, Port: a.self.Port})
	if err != nil || len(data) > limit {
		logger.Warnw("Gossip node meta unavailable", "size", len(data), "limit", limit)
		return nil
	}
	return data
}

func (a *Adapter) NotifyMsg([]byte)                           {}
func (a *Adapter) GetBroadcasts(overhead, limit int) [][]byte { return nil }
func (a *Adapter) LocalState(join bool) []byte                { return nil }
func (a *Adapter) MergeRemoteState(buf []byte, join bool)     {}

// NotifyJoin adds the joining node's RPC endpoint to the registry.
func (a *Adapter) NotifyJoin(node *memberlist.Node) {
	n, ok := decodeMeta(node.Meta)
	if !ok || n == a.self {
		return
	}
	if a.members.Add(n) {
		logger.Infow("Node joined via gossip", "node", n.String(), "gossip_name", node.Name)
	}
}

// NotifyLeave removes the departed node from the registry.
func (a *Adapter) NotifyLeave(node *memberlist.Node) {
	n, ok := decodeMeta(node.Meta)
	if !ok || n == a.self {
		return
	}
	if a.members.Remove(n) {
		logger.Infow("Node left via gossip", "node", n.String(), "gossip_name", node.Name)
	}
}

// NotifyUpdate re-applies a node whose metadata changed.
func (a *Adapter) NotifyUpdate(node *memberlist.Node) {
	a.NotifyJoin(node)
}

func decodeMeta(meta []byte) (membership.Node, bool) {
	if len(meta) == 0 {
		return membership.Node{}, false
	}
	var m nodeMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		logger.Warnw("failed to decode node metadata", "error", err.Error())
		return membership.Node{}, false
	}
	if m.Host == "" || m.Port <= 0 {
		return membership.Node{}, false
	}
	return membership.NewNode(m.Host, m.Port), true
}
