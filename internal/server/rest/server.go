// Package rest exposes the authentication API over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/logging"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators of the HTTP server.
type Deps struct {
	Guard     RequestAuthenticator
	Auth      AuthService
	SignUp    SignUpService
	Profiles  ProfileService
	Validator *dto.Validator
	Health    map[string]HealthCheck
	Logger    logging.Logger
}

// Server is the HTTP API.
type Server struct {
	address         string
	shutdownTimeout time.Duration
	engine          *gin.Engine
	guard           RequestAuthenticator
	auth            AuthService
	signup          SignUpService
	profiles        ProfileService
	validator       *dto.Validator
	health          map[string]HealthCheck
	logger          logging.Logger
}

// NewServer builds the engine. Middleware order is fixed: recovery, request
// log, authentication; route-level authorization follows.
func NewServer(address string, shutdownTimeout time.Duration, d Deps) *Server {
	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		guard:           d.Guard,
		auth:            d.Auth,
		signup:          d.SignUp,
		profiles:        d.Profiles,
		validator:       d.Validator,
		health:          d.Health,
		logger:          d.Logger.With("module", "http_server"),
	}

	e := gin.New()
	e.HandleMethodNotAllowed = true
	e.Use(s.recovery(), s.requestLog(), s.Authentication())

	e.NoRoute(func(c *gin.Context) { abort(c, http.StatusNotFound, msgNotFound, nil) })
	e.NoMethod(func(c *gin.Context) { abort(c, http.StatusMethodNotAllowed, "Method not allowed", nil) })

	e.GET("/health", s.handleHealth)

	a := e.Group("/auth")
	a.POST("/login", s.handleLogin)
	a.POST("/signup", s.handleSignUp)
	a.POST("/refresh", s.handleRefresh)
	a.POST("/logout", RequireAuthenticated(), s.handleLogout)
	a.GET("/me", RequireAuthenticated(), s.handleMe)

	e.GET("/mentors/me", RequireAuthority(models.RoleMentor.Authority()), s.handleMentorProfile)
	e.GET("/mentees/me", RequireAuthority(models.RoleMentee.Authority()), s.handleMenteeProfile)

	s.engine = e
	return s
}

// Handler exposes the engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
