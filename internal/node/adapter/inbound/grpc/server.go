package grpc_handler

import (
	"context"
	"errors"

	familyv1 "github.com/anthanhphan/go-disk-register/api/family/v1"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server implements the family and storage gRPC services of one node.
type Server struct {
	familyv1.UnimplementedFamilyServiceServer
	familyv1.UnimplementedStorageServiceServer
	service port.NodeService
}

// NewServer creates a new gRPC server.
func NewServer(service port.NodeService) *Server {
	return &Server{
		service: service,
	}
}

// Register attaches both services to registrar.
func (s *Server) Register(registrar grpc.ServiceRegistrar) {
	familyv1.RegisterFamilyServiceServer(registrar, s)
	familyv1.RegisterStorageServiceServer(registrar, s)
}

// Join records the caller and returns the membership view.
func (s *Server) Join(ctx context.Context, req *familyv1.NodeInfo) (*familyv1.FamilyView, error) {
	caller := fromNodeInfo(req)
	if caller.IsZero() || caller.Port <= 0 {
		return nil, status.Error(codes.InvalidArgument, "caller host and port are required")
	}
	return toFamilyView(s.service.Join(ctx, caller)), nil
}

// GetFamily returns the membership view.
func (s *Server) GetFamily(ctx context.Context, _ *familyv1.Empty) (*familyv1.FamilyView, error) {
	return toFamilyView(s.service.Family(ctx)), nil
}

// Store persists a replicated message. Storage failures are reported in the
// result, not as an RPC error.
func (s *Server) Store(ctx context.Context, req *familyv1.StoredMessage) (*familyv1.StoreResult, error) {
	if err := s.service.StoreMessage(ctx, req.Id, req.Text); err != nil {
		return &familyv1.StoreResult{Success: false, Error: err.Error()}, nil
	}
	return &familyv1.StoreResult{Success: true}, nil
}

// Retrieve returns the stored text, or an empty text when absent or unreadable.
func (s *Server) Retrieve(ctx context.Context, req *familyv1.MessageId) (*familyv1.StoredMessage, error) {
	text, err := s.service.RetrieveMessage(ctx, req.Id)
	if err != nil {
		if !errors.Is(err, port.ErrMessageNotFound) {
			logger.Warnw("Retrieve RPC failed", "id", req.Id, "error", err.Error())
		}
		text = ""
	}
	return &familyv1.StoredMessage{Id: req.Id, Text: text}, nil
}

func fromNodeInfo(info *familyv1.NodeInfo) membership.Node {
	if info == nil {
		return membership.Node{}
	}
	return membership.NewNode(info.Host, int(info.Port))
}

func toNodeInfo(node membership.Node) *familyv1.NodeInfo {
	return &familyv1.NodeInfo{Host: node.Host, Port: int32(node.Port)}
}

func toFamilyView(nodes []membership.Node) *familyv1.FamilyView {
	view := &familyv1.FamilyView{Members: make([]*familyv1.NodeInfo, 0, len(nodes))}
	for _, n := range nodes {
		view.Members = append(view.Members, toNodeInfo(n))
	}
	return view
}

func fromFamilyView(view *familyv1.FamilyView) []membership.Node {
	if view == nil {
		return nil
	}
	nodes := make([]membership.Node, 0, len(view.Members))
	for _, info := range view.Members {
		if n := fromNodeInfo(info); !n.IsZero() {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
