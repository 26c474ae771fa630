package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"google.golang.org/grpc"

	grpcHandler "github.com/anthanhphan/go-disk-register/internal/node/adapter/inbound/grpc"
	httpHandler "github.com/anthanhphan/go-disk-register/internal/node/adapter/inbound/http"
	"github.com/anthanhphan/go-disk-register/internal/node/adapter/inbound/text"
	"github.com/anthanhphan/go-disk-register/internal/node/config"
	"github.com/anthanhphan/go-disk-register/internal/node/domain"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/internal/node/service"
	"github.com/anthanhphan/go-disk-register/pkg/gossip"
	"github.com/anthanhphan/go-disk-register/pkg/location"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
	"github.com/anthanhphan/gosdk/logger"
)

const (
	familyReportDelay    = 3 * time.Second
	familyReportInterval = 10 * time.Second
	leaderReportDelay    = 15 * time.Second
	leaderReportInterval = 30 * time.Second
	gossipLeaveTimeout   = 2 * time.Second
	adminStopTimeout     = 5 * time.Second
)

type App struct {
	cfg  *config.Config
	self membership.Node
	role domain.Role

	listener net.Listener
	server   *grpc.Server
	store    port.MessageStore
	client   *grpcHandler.ClientAdapter
	node     *service.NodeServiceImpl

	textServer   *text.Server
	textListener net.Listener
	admin        *httpHandler.Server
	gossip       *gossip.Adapter

	backgroundStop context.CancelFunc
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	return build(cfg)
}

// build wires a node from cfg without starting anything.
func build(cfg *config.Config) (*App, error) {
	// 3. Bind the first free RPC port; holding the base port makes us leader.
	listener, boundPort, err := bindFirstFree(cfg.Server.Host, cfg.Server.BasePort, cfg.Server.MaxPortScan)
	if err != nil {
		return nil, fmt.Errorf("failed to bind rpc port: %w", err)
	}
	self := membership.NewNode(cfg.Server.Host, boundPort)
	role := domain.RoleFor(boundPort, cfg.Server.BasePort)

	// 4. Storage Engine
	store, err := newMessageStore(cfg.Storage, boundPort)
	if err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// 5. Node services
	tolerance := config.LoadTolerance(cfg.Tolerance.File)
	client := grpcHandler.NewClientAdapter(cfg.RPCTimeout())
	registry := membership.NewRegistry(self)
	node := service.NewNodeService(registry, location.NewRegistry(location.DefaultShardCount), store, client, role, tolerance)

	// 6. gRPC Server
	grpcServer := grpc.NewServer()
	grpcHandler.NewServer(node).Register(grpcServer)

	a := &App{
		cfg:      cfg,
		self:     self,
		role:     role,
		listener: listener,
		server:   grpcServer,
		store:    store,
		client:   client,
		node:     node,
	}

	// 7. Leader text listener
	if role.IsLeader() {
		addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Leader.Port))
		textListener, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Errorw("Leader text listener unavailable", "addr", addr, "error", err.Error())
		} else {
			a.textListener = textListener
			a.textServer = text.NewServer(node, cfg.Leader.MaxClients)
		}
	}

	// 8. Optional surfaces
	if cfg.Admin.Enabled {
		addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(boundPort+cfg.Admin.PortOffset))
		a.admin = httpHandler.NewServer(addr, role, node)
	}

	if cfg.Gossip.Enabled {
		adapter, err := gossip.NewAdapter(self, cfg.Server.Host, boundPort+cfg.Gossip.PortOffset, registry)
		if err != nil {
			logger.Warnw("Gossip disabled", "error", err.Error())
		} else {
			a.gossip = adapter
		}
	}

	return a, nil
}

func (a *App) Run() error {
	serverErrCh := a.start()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		if !errors.Is(err, grpc.ErrServerStopped) && !errors.Is(err, net.ErrClosed) {
			runErr = fmt.Errorf("gRPC server failed: %w", err)
			logger.Errorw("Family gRPC server exited unexpectedly", "error", err.Error())
		}
	}

	a.shutdown()
	return runErr
}

// start launches every listener and background task. The returned channel
// receives the gRPC server's exit error.
func (a *App) start() <-chan error {
	logger.Infow("Family node starting",
		"node", a.self.String(),
		"role", string(a.role),
		"storage", a.cfg.Storage.Backend)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Serve(a.listener); err != nil {
			serverErrCh <- err
		}
	}()

	bgCtx, cancel := context.WithCancel(context.Background())
	a.backgroundStop = cancel

	if a.textServer != nil {
		logger.Infow("Leader text listener started", "addr", a.textListener.Addr().String())
		go func() {
			if err := a.textServer.Serve(bgCtx, a.textListener); err != nil {
				logger.Errorw("Leader text listener stopped", "error", err.Error())
			}
		}()
	}

	if a.admin != nil {
		go func() {
			if err := a.admin.Start(); err != nil {
				logger.Errorw("Admin HTTP server stopped", "error", err.Error())
			}
		}()
	}

	if a.gossip != nil {
		go a.joinGossip()
	}

	go a.node.Discover(bgCtx, a.cfg.Server.BasePort)
	go a.node.StartHealthChecker(bgCtx, a.cfg.HealthWarmup(), a.cfg.HealthInterval())

	if a.cfg.Report.Enabled {
		go a.node.StartFamilyReporter(bgCtx, familyReportDelay, familyReportInterval)
		if a.role.IsLeader() {
			go a.node.StartLeaderReporter(bgCtx, leaderReportDelay, leaderReportInterval)
		}
	}

	return serverErrCh
}

func (a *App) joinGossip() {
	seeds := a.gossipSeeds()
	n, err := a.gossip.Join(seeds)
	if err != nil {
		logger.Warnw("Gossip join failed", "seeds", seeds, "error", err.Error())
		return
	}
	logger.Infow("Gossip joined", "contacted", n)
}

// gossipSeeds returns the configured seeds, or the leader's gossip endpoint.
// Our own endpoint is never a seed.
func (a *App) gossipSeeds() []string {
	own := net.JoinHostPort(a.self.Host, strconv.Itoa(a.self.Port+a.cfg.Gossip.PortOffset))

	seeds := a.cfg.Gossip.Seeds
	if len(seeds) == 0 {
		seeds = []string{net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.BasePort+a.cfg.Gossip.PortOffset))}
	}

	out := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		if seed == "" || seed == own {
			continue
		}
		out = append(out, seed)
	}
	return out
}

func (a *App) shutdown() {
	logger.Info("Shutting down family node")

	if a.backgroundStop != nil {
		a.backgroundStop()
	}
	if a.gossip != nil {
		if err := a.gossip.Leave(gossipLeaveTimeout); err != nil {
			logger.Warnw("Gossip leave failed", "error", err.Error())
		}
	}
	if a.admin != nil {
		ctx, cancel := context.WithTimeout(context.Background(), adminStopTimeout)
		if err := a.admin.Stop(ctx); err != nil {
			logger.Warnw("Admin HTTP stop failed", "error", err.Error())
		}
		cancel()
	}
	a.server.GracefulStop()
	if err := a.store.Close(); err != nil {
		logger.Warnw("Message store close failed", "error", err.Error())
	}
	if err := a.client.Close(); err != nil {
		logger.Warnw("Peer client close failed", "error", err.Error())
	}
}
