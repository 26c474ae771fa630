package membership

import (
	"net"
	"strconv"
)

// Node identifies a cluster member by the address of its RPC endpoint.
type Node struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// NewNode creates a node identity.
func NewNode(host string, port int) Node {
	return Node{Host: host, Port: port}
}

// Addr returns the dialable host:port of the node.
func (n Node) Addr() string {
	return net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
}

func (n Node) String() string {
	return n.Addr()
}

// IsZero reports whether the node carries no address.
func (n Node) IsZero() bool {
	return n.Host == "" && n.Port == 0
}

// Without returns a copy of nodes with every occurrence of self removed.
func Without(nodes []Node, self Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n == self {
			continue
		}
		out = append(out, n)
	}
	return out
}
