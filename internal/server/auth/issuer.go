package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RefreshTokenStore persists the live refresh token of an email.
type RefreshTokenStore interface {
	Save(ctx context.Context, email, token string, ttl time.Duration) error
	Rotate(ctx context.Context, email, oldToken, newToken string, ttl time.Duration) error
}

// Issuer mints access/refresh pairs and records the refresh token.
type Issuer struct {
	codec      *Codec
	store      RefreshTokenStore
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(codec *Codec, store RefreshTokenStore, accessTTL, refreshTTL time.Duration) (*Issuer, error) {
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &Issuer{
		codec:      codec,
		store:      store,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueTokens signs a pair for user and overwrites the stored refresh token.
// Nothing is returned when the store write fails.
func (i *Issuer) IssueTokens(ctx context.Context, user *models.User, authorities []string) (*TokenPair, error) {
	pair, err := i.sign(user, authorities)
	if err != nil {
		return nil, err
	}

	if err := i.store.Save(ctx, user.Email, pair.RefreshToken, i.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return pair, nil
}

// RotateTokens signs a pair for user and stores its refresh token only if
// presented is still the live one. A superseded or already redeemed token
// yields common.ErrorNotFound from the store.
func (i *Issuer) RotateTokens(ctx context.Context, user *models.User, authorities []string, presented string) (*TokenPair, error) {
	pair, err := i.sign(user, authorities)
	if err != nil {
		return nil, err
	}

	if err := i.store.Rotate(ctx, user.Email, presented, pair.RefreshToken, i.refreshTTL); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return pair, nil
}

func (i *Issuer) sign(user *models.User, authorities []string) (*TokenPair, error) {
	now := i.codec.Now()
	accessExp := now.Add(i.accessTTL)
	refreshExp := now.Add(i.refreshTTL)

	access, err := i.codec.Encode(Claims{
		RegisteredClaims: registered(user.Email, now, accessExp),
		UserID:           user.ID,
		Authorities:      strings.Join(authorities, ","),
		TokenType:        TokenTypeAccess,
	})
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	refresh, err := i.codec.Encode(Claims{
		RegisteredClaims: registered(user.Email, now, refreshExp),
		UserID:           user.ID,
		TokenType:        TokenTypeRefresh,
	})
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func registered(subject string, iat, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}
