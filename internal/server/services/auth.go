// Package services contains server-side business logic: login, token
// refresh, logout and role-specific signup.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/auth"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/refreshtokens"
)

type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, email, rawPassword string) (*auth.Principal, error)
}

type TokenIssuer interface {
	IssueTokens(ctx context.Context, user *models.User, authorities []string) (*auth.TokenPair, error)
	RotateTokens(ctx context.Context, user *models.User, authorities []string, presented string) (*auth.TokenPair, error)
}

type TokenDecoder interface {
	Decode(token string) (*auth.Claims, error)
}

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// LoginResult is returned by Login and Refresh.
type LoginResult struct {
	Tokens  *auth.TokenPair
	User    *models.User
	LoginAt time.Time
}

// AuthService implements login, refresh and logout on top of the auth core.
type AuthService struct {
	authenticator CredentialAuthenticator
	issuer        TokenIssuer
	decoder       TokenDecoder
	users         UserFinder
	tokens        refreshtokens.Repository
	timeout       time.Duration
	now           func() time.Time
}

func NewAuthService(
	authenticator CredentialAuthenticator,
	issuer TokenIssuer,
	decoder TokenDecoder,
	users UserFinder,
	tokens refreshtokens.Repository,
	timeout time.Duration,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		issuer:        issuer,
		decoder:       decoder,
		users:         users,
		tokens:        tokens,
		timeout:       timeout,
		now:           time.Now,
	}
}

// Login checks credentials and issues a token pair. Bad credentials yield
// common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	principal, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuer.IssueTokens(ctx, principal.User, principal.Authorities)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &LoginResult{Tokens: pair, User: principal.User, LoginAt: s.now()}, nil
}

// Refresh exchanges the live refresh token of a user for a new pair. Tokens
// that are invalid, not of REFRESH type or superseded by a newer login yield
// common.ErrUnauthenticated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.decoder.Decode(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnauthenticated, err)
	}
	if claims.TokenType != auth.TokenTypeRefresh {
		return nil, fmt.Errorf("%w: not a refresh token", common.ErrUnauthenticated)
	}

	user, err := s.findUser(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", common.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	pair, err := s.issuer.RotateTokens(ctx, user, []string{user.Role.Authority()}, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: refresh token superseded", common.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	return &LoginResult{Tokens: pair, User: user, LoginAt: s.now()}, nil
}

// Logout removes the refresh token of email. Access tokens stay valid until
// they expire.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	if err := s.tokens.Delete(ctx, email); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) findUser(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.users.GetByEmail(ctx, email)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
