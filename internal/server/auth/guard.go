package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/logging"
)

// Request authentication failures. All wrap common.ErrUnauthenticated.
var (
	ErrMissingAuthHeader   = fmt.Errorf("%w: missing authorization header", common.ErrUnauthenticated)
	ErrMalformedAuthHeader = fmt.Errorf("%w: malformed authorization header", common.ErrUnauthenticated)
	ErrTokenRejected       = fmt.Errorf("%w: token rejected", common.ErrUnauthenticated)
	ErrUnknownSubject      = fmt.Errorf("%w: unknown subject", common.ErrUnauthenticated)
)

// Guard decides whether a request needs a token and resolves bearer tokens
// to principals. It is shared by the HTTP and gRPC transports.
type Guard struct {
	codec       *Codec
	users       UserFinder
	publicPaths []string
	timeout     time.Duration
	logger      logging.Logger
}

// NewGuard validates every public path pattern with path.Match syntax.
func NewGuard(codec *Codec, users UserFinder, publicPaths []string, timeout time.Duration, logger logging.Logger) (*Guard, error) {
	for _, p := range publicPaths {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("public path %q: %w", p, err)
		}
	}

	return &Guard{
		codec:       codec,
		users:       users,
		publicPaths: append([]string(nil), publicPaths...),
		timeout:     timeout,
		logger:      logger.With("module", "auth_guard"),
	}, nil
}

// IsPublic reports whether the request may proceed without a token.
// Preflight requests are always public.
func (g *Guard) IsPublic(method, requestPath string) bool {
	if method == http.MethodOptions {
		return true
	}
	for _, p := range g.publicPaths {
		if p == requestPath {
			return true
		}
		if ok, _ := path.Match(p, requestPath); ok {
			return true
		}
	}
	return false
}

// Authenticate resolves an Authorization header value.
//
// An access token yields its principal. A valid refresh token yields
// (nil, nil): the request continues with no principal attached.
func (g *Guard) Authenticate(ctx context.Context, header string) (*Principal, error) {
	if header == "" {
		return nil, ErrMissingAuthHeader
	}

	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return nil, ErrMalformedAuthHeader
	}

	claims, err := g.codec.Decode(token)
	if err != nil {
		g.logger.Debug(ctx, "token rejected", "error", err)
		return nil, ErrTokenRejected
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	user, err := g.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("load principal: %w", err)
	}

	return &Principal{User: user, Authorities: claims.AuthorityList()}, nil
}
