// Package familyv1 defines the peer-to-peer RPC contract between family nodes:
// the membership service (join / family view) and the storage service
// (store / retrieve). Messages travel over gRPC encoded with msgpack.
package familyv1

// NodeInfo identifies a node by the host and port of its RPC endpoint.
type NodeInfo struct {
	Host string `codec:"host"`
	Port int32  `codec:"port"`
}

// FamilyView is a membership view: every node the responder knows about.
type FamilyView struct {
	Members []*NodeInfo `codec:"members"`
}

// Empty is the argument of parameterless calls.
type Empty struct{}

// StoredMessage carries one message. An empty Text in a Retrieve reply
// means the message is not held by the responder.
type StoredMessage struct {
	Id   int32  `codec:"id"`
	Text string `codec:"text"`
}

// MessageId addresses one message.
type MessageId struct {
	Id int32 `codec:"id"`
}

// StoreResult reports the outcome of a Store call.
type StoreResult struct {
	Success bool   `codec:"success"`
	Error   string `codec:"error"`
}
