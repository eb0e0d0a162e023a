package auth

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	User        *models.User
	Authorities []string
}

// HasAuthority reports whether the principal was granted authority.
func (p *Principal) HasAuthority(authority string) bool {
	return p != nil && slices.Contains(p.Authorities, authority)
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFromContext returns the principal set by WithPrincipal, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok && p != nil
}
