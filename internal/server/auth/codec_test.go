package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsAt(now time.Time, ttl time.Duration, tt TokenType) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "mentor@example.com",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:      1,
		Authorities: "ROLE_MENTOR",
		TokenType:   tt,
	}
}

func TestNewCodec_ShortKey(t *testing.T) {
	_, err := NewCodec([]byte("short"))
	require.ErrorIs(t, err, ErrShortKey)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)

	for _, tt := range []TokenType{TokenTypeAccess, TokenTypeRefresh} {
		t.Run(string(tt), func(t *testing.T) {
			in := claimsAt(clock.Now(), time.Hour, tt)
			if tt == TokenTypeRefresh {
				in.Authorities = ""
			}

			tok, err := codec.Encode(in)
			require.NoError(t, err)
			assert.Equal(t, 2, strings.Count(tok, "."))

			out, err := codec.Decode(tok)
			require.NoError(t, err)
			assert.Equal(t, in, *out)
		})
	}
}

func TestEncode_TruncatesToSeconds(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)

	in := claimsAt(clock.Now().Add(700*time.Millisecond), time.Hour, TokenTypeAccess)
	tok, err := codec.Encode(in)
	require.NoError(t, err)

	out, err := codec.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), out.IssuedAt.Time)
}

func TestEncode_UnknownType(t *testing.T) {
	codec := newTestCodec(t, newClock())
	_, err := codec.Encode(claimsAt(time.Now(), time.Hour, "SESSION"))
	require.Error(t, err)
}

func TestDecode_Expired(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)

	tok, err := codec.Encode(claimsAt(clock.Now(), time.Minute, TokenTypeAccess))
	require.NoError(t, err)

	clock.Advance(time.Minute + time.Second)
	_, err = codec.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
	require.ErrorContains(t, err, "expired")
}

func TestDecode_ExpiredInThePastAtIssue(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)

	tok, err := codec.Encode(claimsAt(clock.Now(), -time.Second, TokenTypeAccess))
	require.NoError(t, err)

	_, err = codec.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_WrongKey(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)
	other, err := NewCodec([]byte("ffffffffffffffffffffffffffffffffffffffff"), WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := codec.Encode(claimsAt(clock.Now(), time.Hour, TokenTypeAccess))
	require.NoError(t, err)

	_, err = other.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_RejectsOtherAlgorithms(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)
	c := claimsAt(clock.Now(), time.Hour, TokenTypeAccess)

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(testKey)
	require.NoError(t, err)
	_, err = codec.Decode(hs256)
	require.ErrorIs(t, err, common.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Decode(none)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_Malformed(t *testing.T) {
	codec := newTestCodec(t, newClock())
	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := codec.Decode(tok)
		require.ErrorIs(t, err, common.ErrInvalidToken, tok)
	}
}

func TestDecode_MissingExpiry(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)
	c := claimsAt(clock.Now(), time.Hour, TokenTypeAccess)
	c.ExpiresAt = nil

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(testKey)
	require.NoError(t, err)
	_, err = codec.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_UnknownTokenType(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)
	c := claimsAt(clock.Now(), time.Hour, "SESSION")

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(testKey)
	require.NoError(t, err)
	_, err = codec.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDecode_MissingSubject(t *testing.T) {
	clock := newClock()
	codec := newTestCodec(t, clock)
	c := claimsAt(clock.Now(), time.Hour, TokenTypeAccess)
	c.Subject = ""

	tok, err := codec.Encode(c)
	require.NoError(t, err)
	_, err = codec.Decode(tok)
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthorityList(t *testing.T) {
	assert.Nil(t, (&Claims{}).AuthorityList())
	assert.Equal(t, []string{"ROLE_MENTOR", "ROLE_ADMIN"}, (&Claims{Authorities: "ROLE_MENTOR,ROLE_ADMIN"}).AuthorityList())
}
