package domain

import "github.com/anthanhphan/go-disk-register/pkg/membership"

// HolderCount is the number of tracked messages held by one node.
type HolderCount struct {
	Node     membership.Node `json:"node"`
	Messages int             `json:"messages"`
}

// NodeStatus is a point-in-time summary of a node, used by reporters and
// the admin surface.
type NodeStatus struct {
	Self            membership.Node   `json:"self"`
	Role            Role              `json:"role"`
	Tolerance       int               `json:"tolerance"`
	Members         []membership.Node `json:"members"`
	LocalMessages   int               `json:"local_messages"`
	TrackedMessages int               `json:"tracked_messages"`
	Holders         []HolderCount     `json:"holders,omitempty"`
}
