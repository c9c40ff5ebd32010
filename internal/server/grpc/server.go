// Package grpc runs the gRPC health service. Its serving status follows
// periodic database pings.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address         string
	logger          logging.Logger
	db              Pinger
	interval        time.Duration
	shutdownTimeout time.Duration
	health          *health.Server
}

func NewGRPCServer(a string, l logging.Logger, db Pinger, interval, shutdownTimeout time.Duration) (*GRPCServer, error) {
	return &GRPCServer{
		address:         a,
		logger:          l.With("module", "grpc_server"),
		db:              db,
		interval:        interval,
		shutdownTimeout: shutdownTimeout,
		health:          health.NewServer(),
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())
	return s.Serve(ctx, listen)
}

// Serve runs the health service on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.loggingInterceptor),
		grpc.ChainStreamInterceptor(s.streamLoggingInterceptor),
	)
	healthpb.RegisterHealthServer(srv, s.health)

	s.checkDatabase(ctx)
	go s.probe(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()

		// Watch streams stay open until clients leave, so bound the wait.
		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(s.shutdownTimeout):
			srv.Stop()
		}
	}()

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) probe(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkDatabase(ctx)
		}
	}
}

// checkDatabase pings the store and publishes the result for both the
// overall server and the smartbrain service.
func (s *GRPCServer) checkDatabase(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout(s.interval))
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn(ctx, "database ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(common.ServiceName, status)
}

func pingTimeout(interval time.Duration) time.Duration {
	if interval <= 0 || interval > 5*time.Second {
		return 5 * time.Second
	}
	return interval
}
