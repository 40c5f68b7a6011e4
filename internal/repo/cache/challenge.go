package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const challengeKey = "stepup:%v"

// Challenge is the pending step-up state for one account: the per-attempt
// TOTP secret and the single-use handle the client must redeem alongside
// the code. One live challenge per account; writes overwrite.
type Challenge struct {
	Secret  string `json:"secret"`
	Pending string `json:"pending"`

	// ExpiresAt is the logical five-minute deadline, enforced by the
	// orchestrator. The redis TTL runs a grace period longer so expiry can
	// be reported as expired rather than absent.
	ExpiresAt int64 `json:"expiresAt"`
}

func (c *Cache) SetChallenge(
	ctx context.Context,
	uid uuid.UUID,
	ch Challenge,
	ttl time.Duration,
) error {
	bytes, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	return c.cli.Set(ctx, fmt.Sprintf(challengeKey, uid), bytes, ttl).Err()
}

// GetChallenge reads without consuming. Used to validate the code before
// deciding whether to consume.
func (c *Cache) GetChallenge(ctx context.Context, uid uuid.UUID) (Challenge, error) {
	ch := Challenge{}
	val, err := c.cli.Get(ctx, fmt.Sprintf(challengeKey, uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ch, ErrNotFoundInCache
		}
		return ch, err
	}

	if err = json.Unmarshal(val, &ch); err != nil {
		return ch, err
	}

	return ch, nil
}

// ConsumeChallenge reads and deletes in one step. GETDEL makes the
// read-and-delete atomic, so two concurrent verifications of the same
// account cannot both observe a live challenge.
func (c *Cache) ConsumeChallenge(ctx context.Context, uid uuid.UUID) (Challenge, error) {
	ch := Challenge{}
	val, err := c.cli.GetDel(ctx, fmt.Sprintf(challengeKey, uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ch, ErrNotFoundInCache
		}
		return ch, err
	}

	if err = json.Unmarshal(val, &ch); err != nil {
		return ch, err
	}

	return ch, nil
}

func (c *Cache) DeleteChallenge(ctx context.Context, uid uuid.UUID) {
	c.Delete(ctx, fmt.Sprintf(challengeKey, uid))
}
