package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef0123456789abcdef")

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
	calls int
}

func newFakeUsers(us ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*models.User{}}
	for _, u := range us {
		f.users[u.Email] = u
	}
	return f
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type savedToken struct {
	token string
	ttl   time.Duration
}

type fakeStore struct {
	mu    sync.Mutex
	saved map[string]savedToken
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string]savedToken{}}
}

func (f *fakeStore) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved[email] = savedToken{token: token, ttl: ttl}
	return nil
}

func (f *fakeStore) Rotate(ctx context.Context, email, oldToken, newToken string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if cur, ok := f.saved[email]; !ok || cur.token != oldToken {
		return common.ErrorNotFound
	}
	f.saved[email] = savedToken{token: newToken, ttl: ttl}
	return nil
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestCodec(t *testing.T, clock *fixedClock) *Codec {
	t.Helper()
	c, err := NewCodec(testKey, WithClock(clock.Now))
	require.NoError(t, err)
	return c
}

func mentorUser() *models.User {
	return &models.User{
		ID:           1,
		Email:        "mentor@example.com",
		PasswordHash: "",
		Name:         "Mentor Kim",
		Role:         models.RoleMentor,
		Gender:       models.GenderMale,
	}
}
