package store

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// UpdateTxn runs fn as an optimistic transaction scoped to key: observe the
// key's version (WATCH), stage changes inside fn through tx.TxPipelined, and
// commit only if the key is untouched since the observation. On conflict the
// staged transaction is discarded and fn re-runs from scratch, so fn must be
// a pure function of the observed state. Conflicts are expected to be rare
// and transient, retries are unbounded and never surfaced to the caller.
func (c *RedisClient) UpdateTxn(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for {
		err := c.inner.Watch(ctx, fn, key)
		if err == redis.TxFailedErr {
			continue
		}
		return err
	}
}
