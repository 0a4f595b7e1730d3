package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const purgeMarkTTL = time.Hour

// PurgeDedup guards the account-deletion purge pipeline against replayed
// events. Key format: purge:<user_id>
type PurgeDedup struct {
	client *redis.Client
}

// NewPurgeDedup creates a PurgeDedup wrapping the given Redis client.
func NewPurgeDedup(client *redis.Client) *PurgeDedup {
	return &PurgeDedup{client: client}
}

// IsDuplicate reports whether a purge for this user was already processed.
func (d *PurgeDedup) IsDuplicate(ctx context.Context, userID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("purge dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this user's purge ran (expires after purgeMarkTTL; user
// ids are never reused, the TTL only bounds key growth).
func (d *PurgeDedup) Mark(ctx context.Context, userID string) error {
	return d.client.Set(ctx, d.key(userID), "1", purgeMarkTTL).Err()
}

func (d *PurgeDedup) key(userID string) string {
	return fmt.Sprintf("purge:%s", userID)
}
