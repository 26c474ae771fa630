package text

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/google/uuid"
)

const (
	RespOK              = "OK"
	RespNotFound        = "NOT_FOUND"
	RespUnknownCommand  = "ERROR: Unknown command. Use SET <id> <message> or GET <id>"
	RespReplicateFailed = "ERROR: Could not replicate to enough members"

	maxLineBytes = 1 << 20
)

// Server is the leader's line-oriented client listener.
type Server struct {
	service port.LeaderService
	clients *resilience.Bulkhead
}

// NewServer creates a text server that serves at most maxClients connections
// at once. Further clients wait in the accept loop.
func NewServer(service port.LeaderService, maxClients int) *Server {
	return &Server{
		service: service,
		clients: resilience.NewBulkhead(maxClients),
	}
}

// Serve accepts clients on lis until ctx is done or lis is closed. Open
// connections are closed on return.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	stop := context.AfterFunc(ctx, func() { _ = lis.Close() })
	defer stop()

	defer func() {
		s.clients.Close()
		s.clients.Wait()
	}()

	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept text client: %w", err)
		}

		if err := s.clients.Go(ctx, func() { s.Handle(ctx, conn) }); err != nil {
			_ = conn.Close()
			return nil
		}
	}
}

// Handle serves one client connection until EOF, a read error or ctx is done.
func (s *Server) Handle(ctx context.Context, conn net.Conn) {
	session := uuid.NewString()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer func() { _ = conn.Close() }()

	logger.Infow("Text client connected", "session", session, "remote", conn.RemoteAddr().String())

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	w := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd := ParseCommand(line)

		resp := s.execute(ctx, session, cmd)
		if _, err := fmt.Fprintf(w, "%s\n", resp); err != nil {
			logger.Warnw("Text client write failed", "session", session, "error", err.Error())
			return
		}
		if err := w.Flush(); err != nil {
			logger.Warnw("Text client write failed", "session", session, "error", err.Error())
			return
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) && ctx.Err() == nil {
		logger.Warnw("Text client read failed", "session", session, "error", err.Error())
	}
	logger.Infow("Text client disconnected", "session", session)
}

func (s *Server) execute(ctx context.Context, session string, cmd Command) string {
	switch cmd.Verb {
	case VerbSet:
		err := s.service.HandleSet(ctx, cmd.ID, cmd.Text)
		switch {
		case err == nil:
			return RespOK
		case errors.Is(err, port.ErrReplicationFailed):
			return RespReplicateFailed
		default:
			return "ERROR: " + err.Error()
		}

	case VerbGet:
		text, err := s.service.HandleGet(ctx, cmd.ID)
		if err != nil {
			if !errors.Is(err, port.ErrMessageNotFound) {
				logger.Warnw("GET failed", "session", session, "id", cmd.ID, "error", err.Error())
			}
			return RespNotFound
		}
		return text

	default:
		logger.Debugw("Unknown text command", "session", session)
		return RespUnknownCommand
	}
}
