package text

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthanhphan/go-disk-register/internal/node/adapter/outbound/memstore"
	"github.com/anthanhphan/go-disk-register/internal/node/domain"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/internal/node/service"
	"github.com/anthanhphan/go-disk-register/pkg/location"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
)

type stubLeader struct {
	setErr  error
	getText string
	getErr  error
}

func (s *stubLeader) HandleSet(ctx context.Context, id int32, text string) error {
	return s.setErr
}

func (s *stubLeader) HandleGet(ctx context.Context, id int32) (string, error) {
	return s.getText, s.getErr
}

type textClient struct {
	conn net.Conn
	r    *bufio.Reader
}

func (c *textClient) send(t *testing.T, line string) string {
	t.Helper()

	require.NoError(t, c.conn.SetDeadline(time.Now().Add(2*time.Second)))
	_, err := fmt.Fprintf(c.conn, "%s\n", line)
	require.NoError(t, err)

	resp, err := c.r.ReadString('\n')
	require.NoError(t, err)
	return resp[:len(resp)-1]
}

func pipeClient(t *testing.T, leader port.LeaderService) *textClient {
	t.Helper()

	serverConn, clientConn := net.Pipe()
	srv := NewServer(leader, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Handle(ctx, serverConn)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		_ = clientConn.Close()
		<-done
	})

	return &textClient{conn: clientConn, r: bufio.NewReader(clientConn)}
}

func TestServer_SingleNodeSetThenGet(t *testing.T) {
	self := membership.NewNode("127.0.0.1", 5555)
	svc := service.NewNodeService(
		membership.NewRegistry(self),
		location.NewRegistry(location.DefaultShardCount),
		memstore.NewMemoryStore(),
		nil,
		domain.RoleLeader,
		2,
	)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(svc, 4)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, lis) }()

	conn, err := net.Dial("tcp", lis.Addr().String())
	require.NoError(t, err)
	c := &textClient{conn: conn, r: bufio.NewReader(conn)}

	assert.Equal(t, RespOK, c.send(t, "SET 10 hello  there"))
	assert.Equal(t, "hello  there", c.send(t, "get 10"))
	assert.Equal(t, RespNotFound, c.send(t, "GET 11"))

	_ = conn.Close()
	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_Responses(t *testing.T) {
	tests := []struct {
		name   string
		leader *stubLeader
		line   string
		want   string
	}{
		{name: "SetOK", leader: &stubLeader{}, line: "SET 1 a", want: RespOK},
		{name: "SetReplicationFailed", leader: &stubLeader{setErr: port.ErrReplicationFailed}, line: "SET 1 a", want: RespReplicateFailed},
		{name: "SetLocalFailure", leader: &stubLeader{setErr: errors.New("disk full")}, line: "SET 1 a", want: "ERROR: disk full"},
		{name: "GetHit", leader: &stubLeader{getText: "hi"}, line: "GET 1", want: "hi"},
		{name: "GetMiss", leader: &stubLeader{getErr: port.ErrMessageNotFound}, line: "GET 1", want: RespNotFound},
		{name: "GetError", leader: &stubLeader{getErr: errors.New("boom")}, line: "GET 1", want: RespNotFound},
		{name: "Unknown", leader: &stubLeader{}, line: "PING", want: RespUnknownCommand},
		{name: "BadID", leader: &stubLeader{}, line: "GET nope", want: RespUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pipeClient(t, tt.leader)
			assert.Equal(t, tt.want, c.send(t, tt.line))
		})
	}
}

func TestServer_IgnoresBlankLines(t *testing.T) {
	c := pipeClient(t, &stubLeader{getText: "x"})

	require.NoError(t, c.conn.SetDeadline(time.Now().Add(2*time.Second)))
	_, err := fmt.Fprint(c.conn, "\n   \r\n\t\n")
	require.NoError(t, err)

	assert.Equal(t, "x", c.send(t, "GET 3"))
}
