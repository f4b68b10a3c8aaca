// ABOUTME: Server orchestrator that coordinates the gRPC and HTTP servers
// ABOUTME: Manages store, chat room and health endpoints lifecycle

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/migchat/migchat-server/internal/config"
	"github.com/migchat/migchat-server/internal/room"
	"github.com/migchat/migchat-server/internal/store"
	"github.com/migchat/migchat-server/proto/migchat"
)

// Server orchestrates the migchat-server components: the gRPC server
// carrying ChatRoomService and, when configured, an HTTP server for health
// checks.
type Server struct {
	config     *config.Config
	store      *store.Store
	room       *room.Room
	grpcServer *grpc.Server
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server instance with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    15 * time.Second,
			Timeout: 5 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ForceServerCodec(migchat.Codec{}),
	)

	srv := &Server{
		config:     cfg,
		store:      st,
		room:       room.New(st, logger),
		grpcServer: grpcServer,
		logger:     logger.With("component", "server"),
	}
	migchat.RegisterChatRoomServiceServer(grpcServer, srv.room)

	if cfg.Server.HTTPAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", srv.handleHealth)
		mux.HandleFunc("/health/ready", srv.handleReady)
		srv.httpServer = &http.Server{
			Addr:              cfg.Server.HTTPAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	return srv, nil
}

// Run starts the servers and blocks until the context is canceled. Returns
// nil on graceful shutdown (context canceled), or an error if a server
// fails.
func (s *Server) Run(ctx context.Context) error {
	grpcLn, httpLn, err := s.setupListeners()
	if err != nil {
		return err
	}

	errCh := s.startServers(grpcLn, httpLn)
	serverErr := s.waitForShutdownSignal(ctx, errCh)

	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// setupListeners creates the TCP listeners. The HTTP listener is nil when
// health endpoints are not configured.
func (s *Server) setupListeners() (grpcLn, httpLn net.Listener, err error) {
	s.logger.Info("starting server",
		"grpc_addr", s.config.Server.GRPCAddr,
		"http_addr", s.config.Server.HTTPAddr,
	)

	grpcLn, err = net.Listen("tcp", s.config.Server.GRPCAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listening on gRPC address: %w", err)
	}

	if s.httpServer != nil {
		httpLn, err = net.Listen("tcp", s.config.Server.HTTPAddr)
		if err != nil {
			_ = grpcLn.Close()
			return nil, nil, fmt.Errorf("listening on HTTP address: %w", err)
		}
	}

	return grpcLn, httpLn, nil
}

// startServers starts the servers in goroutines, returning an error channel.
func (s *Server) startServers(grpcLn, httpLn net.Listener) chan error {
	errCh := make(chan error, 2)

	go func() {
		s.logger.Info("gRPC server listening", "addr", grpcLn.Addr().String())
		if err := s.grpcServer.Serve(grpcLn); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	if httpLn != nil {
		go func() {
			s.logger.Info("HTTP server listening", "addr", httpLn.Addr().String())
			if err := s.httpServer.Serve(httpLn); err != nil && err != http.ErrServerClosed {
				errCh <- fmt.Errorf("HTTP server: %w", err)
			}
		}()
	}

	return errCh
}

// waitForShutdownSignal waits for context cancellation or server error.
func (s *Server) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is
// already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown gracefully stops the servers and releases resources. In-flight
// RPCs get until the context deadline; then the gRPC server is force-stopped.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	var errs []error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}

	s.shutdownGRPCServer(ctx)

	if err := s.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

// shutdownGRPCServer gracefully stops the gRPC server or force-stops on
// context cancel.
func (s *Server) shutdownGRPCServer(ctx context.Context) {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.grpcServer.Stop()
	}
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK if the database is reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "database unavailable: %v", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
