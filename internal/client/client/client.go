// Package client talks to the mtmt HTTP API and keeps the token pair of the
// current session.
package client

import (
	"context"

	"github.com/dmitrijs2005/mtmt/internal/server/dto"
)

type Client interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResponse, error)
	Me(ctx context.Context) (*dto.MeResponse, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	LoggedIn() bool
}
