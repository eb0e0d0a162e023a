package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/auth/password"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

// UserFinder looks identities up by email.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(raw string) (string, error)
	Compare(hash, raw string) error
}

// Authenticator verifies email/password credentials.
type Authenticator struct {
	users     UserFinder
	hasher    PasswordHasher
	timeout   time.Duration
	dummyHash string
}

// NewAuthenticator precomputes a dummy hash compared against when the email is
// unknown, so both failure paths cost one bcrypt comparison.
func NewAuthenticator(users UserFinder, hasher PasswordHasher, timeout time.Duration) (*Authenticator, error) {
	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, err
	}
	return &Authenticator{users: users, hasher: hasher, timeout: timeout, dummyHash: dummy}, nil
}

// Authenticate returns the principal for valid credentials and
// common.ErrInvalidCredentials otherwise.
func (a *Authenticator) Authenticate(ctx context.Context, email, rawPassword string) (*Principal, error) {
	user, err := a.lookup(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = a.hasher.Compare(a.dummyHash, rawPassword)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := a.hasher.Compare(user.PasswordHash, rawPassword); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	return &Principal{User: user, Authorities: []string{user.Role.Authority()}}, nil
}

func (a *Authenticator) lookup(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
