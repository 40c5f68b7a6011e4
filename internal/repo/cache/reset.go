package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const resetKey = "pwreset:%s"

// SetResetToken stores a pending password reset keyed by the token hash.
// The raw token travels only in the email; only its hash is ever stored.
func (c *Cache) SetResetToken(
	ctx context.Context,
	tokenHash string,
	uid uuid.UUID,
	ttl time.Duration,
) error {
	return c.cli.Set(ctx, fmt.Sprintf(resetKey, tokenHash), uid.String(), ttl).Err()
}

// ConsumeResetToken redeems the reset token in one atomic GETDEL, so a
// token presented twice succeeds at most once.
func (c *Cache) ConsumeResetToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	val, err := c.cli.GetDel(ctx, fmt.Sprintf(resetKey, tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotFoundInCache
		}
		return uuid.Nil, err
	}

	return uuid.Parse(val)
}
