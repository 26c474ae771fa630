package domain

// Role is the static part a node plays in the family. The node that binds
// the rendezvous base port is the leader; every other node is a member.
type Role string

const (
	RoleLeader Role = "leader"
	RoleMember Role = "member"
)

// RoleFor resolves the role once at startup from the bound RPC port.
func RoleFor(boundPort, basePort int) Role {
	if boundPort == basePort {
		return RoleLeader
	}
	return RoleMember
}

// IsLeader reports whether r is the leader role.
func (r Role) IsLeader() bool {
	return r == RoleLeader
}
