package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	require.NoError(t, h.Compare(hash, "password123"))
	require.ErrorIs(t, h.Compare(hash, "password124"), ErrMismatch)
}

func TestCompare_BadHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	err := h.Compare("not-a-bcrypt-hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestNewHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewHasher(12).cost)
}

func TestHash_TooLong(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := h.Hash(string(long))
	require.Error(t, err)
}
