package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestAuthenticator is the transport-agnostic request guard.
type RequestAuthenticator interface {
	IsPublic(method, path string) bool
	Authenticate(ctx context.Context, header string) (*auth.Principal, error)
}

const requestIDKey = "request_id"

// recovery turns a panic into a 500 envelope.
func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", r)
				abort(c, http.StatusInternalServerError, msgInternal, nil)
			}
		}()
		c.Next()
	}
}

// requestLog assigns a request id and logs each finished request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// Authentication runs once per request before any route handler. Public
// requests pass untouched. Otherwise the bearer token is resolved and, for
// access tokens, the principal is attached to the request context.
func (s *Server) Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.guard.IsPublic(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		p, err := s.guard.Authenticate(c.Request.Context(), c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			s.fail(c, err)
			return
		}

		if p != nil {
			c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

// RequireAuthenticated rejects requests without a principal, which includes
// requests carrying only a refresh token.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.PrincipalFromContext(c.Request.Context()); !ok {
			abortWithError(c, common.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// RequireAuthority allows principals holding authority and answers 403 to
// everybody else who is authenticated.
func RequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := auth.PrincipalFromContext(c.Request.Context())
		if !ok {
			abortWithError(c, common.ErrUnauthenticated)
			return
		}
		if !p.HasAuthority(authority) {
			abortWithError(c, common.ErrForbidden)
			return
		}
		c.Next()
	}
}
