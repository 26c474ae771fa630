package service

import (
	"context"
	"sort"

	"github.com/anthanhphan/go-disk-register/internal/node/domain"
	"github.com/anthanhphan/gosdk/logger"
)

// reportService builds node summaries and logs them.
type reportService struct {
	core *NodeServiceImpl
}

// newReportService creates the reporting use-case service.
func newReportService(core *NodeServiceImpl) *reportService {
	return &reportService{core: core}
}

func (s *reportService) status(ctx context.Context) domain.NodeStatus {
	local, err := s.core.store.Count(ctx)
	if err != nil {
		logger.Warnw("Failed to count local messages", "error", err.Error())
	}

	counts := s.core.locations.HolderCounts()
	holders := make([]domain.HolderCount, 0, len(counts))
	for node, n := range counts {
		holders = append(holders, domain.HolderCount{Node: node, Messages: n})
	}
	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Node.Addr() < holders[j].Node.Addr()
	})

	return domain.NodeStatus{
		Self:            s.core.registry.Self(),
		Role:            s.core.role,
		Tolerance:       s.core.tolerance,
		Members:         s.core.registry.Snapshot(),
		LocalMessages:   local,
		TrackedMessages: s.core.locations.Len(),
		Holders:         holders,
	}
}

// logFamily logs the membership view, marking the local node.
func (s *reportService) logFamily(ctx context.Context) {
	self := s.core.registry.Self()
	members := s.core.registry.Snapshot()

	names := make([]string, 0, len(members))
	for _, m := range members {
		if m == self {
			names = append(names, m.String()+" (me)")
			continue
		}
		names = append(names, m.String())
	}

	logger.Infow("Family", "self", self.String(), "role", string(s.core.role), "size", len(members), "members", names)
}

// logLeaderStatus logs local message count and per-holder placement.
func (s *reportService) logLeaderStatus(ctx context.Context) {
	st := s.status(ctx)

	placement := make(map[string]int, len(st.Holders))
	for _, h := range st.Holders {
		placement[h.Node.String()] = h.Messages
	}

	logger.Infow("Leader status",
		"local_messages", st.LocalMessages,
		"tracked_messages", st.TrackedMessages,
		"placement", placement)
}
