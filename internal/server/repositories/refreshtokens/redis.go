package refreshtokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "refresh_token:"
	indexPrefix = "refresh_token:idx:"
)

// KEYS[1] record hash, KEYS[2] index key of the new token.
// ARGV[1] token, ARGV[2] ttl in ms, ARGV[3] email, ARGV[4] index prefix.
const saveScript = `
local prev = redis.call("HGET", KEYS[1], "token")
if prev and prev ~= ARGV[1] then
  redis.call("DEL", ARGV[4] .. prev)
end
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1], "email", ARGV[3], "token", ARGV[1])
redis.call("PEXPIRE", KEYS[1], ARGV[2])
redis.call("SET", KEYS[2], ARGV[3], "PX", ARGV[2])
return 1
`

// Same writes as saveScript, applied only while the record still holds the
// old token. KEYS[1] record hash, KEYS[2] index key of the new token.
// ARGV[1] old token, ARGV[2] new token, ARGV[3] ttl in ms, ARGV[4] email,
// ARGV[5] index prefix.
const rotateScript = `
local cur = redis.call("HGET", KEYS[1], "token")
if cur ~= ARGV[1] then
  return 0
end
redis.call("DEL", ARGV[5] .. cur)
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1], "email", ARGV[4], "token", ARGV[2])
redis.call("PEXPIRE", KEYS[1], ARGV[3])
redis.call("SET", KEYS[2], ARGV[4], "PX", ARGV[3])
return 1
`

// KEYS[1] record hash. ARGV[1] index prefix.
const deleteScript = `
local prev = redis.call("HGET", KEYS[1], "token")
if prev then
  redis.call("DEL", ARGV[1] .. prev)
end
return redis.call("DEL", KEYS[1])
`

var (
	saveLua   = redis.NewScript(saveScript)
	rotateLua = redis.NewScript(rotateScript)
	deleteLua = redis.NewScript(deleteScript)
)

// RedisRepository implements Repository on Redis. Expiry is enforced by Redis.
type RedisRepository struct {
	rdb     redis.UniversalClient
	timeout time.Duration
}

// NewRedisRepository binds the store to rdb. Every call is bounded by timeout
// when it is positive.
func NewRedisRepository(rdb redis.UniversalClient, timeout time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, timeout: timeout}
}

func recordKey(email string) string { return keyPrefix + email }
func indexKey(token string) string  { return indexPrefix + token }

func (r *RedisRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *RedisRepository) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("refresh token ttl must be positive, got %s", ttl)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	keys := []string{recordKey(email), indexKey(token)}
	if err := saveLua.Run(ctx, r.rdb, keys, token, ttl.Milliseconds(), email, indexPrefix).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}

	return nil
}

// Rotate replaces oldToken with newToken in one step. It returns
// common.ErrorNotFound when the record is gone or holds another token, so of
// several callers presenting the same token only one succeeds.
func (r *RedisRepository) Rotate(ctx context.Context, email, oldToken, newToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("refresh token ttl must be positive, got %s", ttl)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	keys := []string{recordKey(email), indexKey(newToken)}
	rotated, err := rotateLua.Run(ctx, r.rdb, keys, oldToken, newToken, ttl.Milliseconds(), email, indexPrefix).Int()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if rotated == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *RedisRepository) Find(ctx context.Context, email string) (*models.RefreshToken, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		tokenCmd *redis.StringCmd
		ttlCmd   *redis.DurationCmd
	)
	_, err := r.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		tokenCmd = p.HGet(ctx, recordKey(email), "token")
		ttlCmd = p.PTTL(ctx, recordKey(email))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	token, err := tokenCmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	return &models.RefreshToken{Email: email, Token: token, TTL: ttlCmd.Val()}, nil
}

func (r *RedisRepository) FindEmailByToken(ctx context.Context, token string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	email, err := r.rdb.Get(ctx, indexKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("redis error: %w", err)
	}

	return email, nil
}

func (r *RedisRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := deleteLua.Run(ctx, r.rdb, []string{recordKey(email)}, indexPrefix).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}

	return nil
}
