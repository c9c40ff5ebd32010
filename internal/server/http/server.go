// Package http exposes the SmartBrain JSON API over gin.
package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/smartbrain/internal/logging"
	"github.com/dmitrijs2005/smartbrain/internal/server/inference"
	"github.com/dmitrijs2005/smartbrain/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*models.Profile, error)
	Register(ctx context.Context, email, name, password string) (*models.Profile, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	IncrementEntries(ctx context.Context, id int64) (int64, error)
}

type HTTPServer struct {
	address         string
	auth            AuthService
	profiles        ProfileService
	gateway         inference.Gateway
	logger          logging.Logger
	corsConfig      cors.Config
	shutdownTimeout time.Duration
}

// NewHTTPServer validates the CORS origins up front; an empty list allows
// every origin.
func NewHTTPServer(a string, l logging.Logger, as AuthService, ps ProfileService, g inference.Gateway, corsOrigins []string, shutdownTimeout time.Duration) (*HTTPServer, error) {
	cc := newCORSConfig(corsOrigins)
	if err := cc.Validate(); err != nil {
		return nil, fmt.Errorf("cors config: %w", err)
	}

	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		auth:            as,
		profiles:        ps,
		gateway:         g,
		corsConfig:      cc,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Router builds the gin engine with middleware and all routes mounted.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		s.requestID(),
		s.requestLogger(),
		s.recovery(),
		cors.New(s.corsConfig),
	)

	r.GET("/", s.status)
	r.POST("/signin", s.signIn)
	r.POST("/register", s.register)
	r.GET("/profile/:id", s.getProfile)
	r.PUT("/image", s.incrementEntries)
	r.POST("/imageurl", s.detect)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
