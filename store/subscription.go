package store

import (
	"context"

	"github.com/Luismorlan/dramachaser/utils"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// SubscriptionStore is the bipartite user <-> drama membership relation. It
// is mutated by Chase/Abandon (triggered from the UI layer, possibly while a
// sweep is reading the same keys) and read by the sweep. Every mutation is an
// optimistic transaction on the affected user's tracked-set key, so
// concurrent writers converge without lost updates and readers never block
// writers.
type SubscriptionStore struct {
	client *RedisClient
}

func NewSubscriptionStore(client *RedisClient) *SubscriptionStore {
	return &SubscriptionStore{client: client}
}

// Chase adds dramaID to userID's tracked set and userID to the global user
// set, as one atomic unit. Re-chasing an already tracked drama is a no-op.
func (s *SubscriptionStore) Chase(ctx context.Context, userID string, dramaID string) error {
	if err := s.validateIds(userID, dramaID); err != nil {
		return err
	}
	return s.client.UpdateTxn(ctx, s.client.keyParser.UserKey(userID), func(tx *redis.Tx) error {
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			// user to drama mapping
			pipe.SAdd(ctx, s.client.keyParser.UserKey(userID), dramaID)
			// all users mapping
			pipe.SAdd(ctx, AllUsersKey, userID)
			return nil
		})
		return err
	})
}

// Abandon removes dramaID from userID's tracked set. Global user-set
// membership is retracted only when the removal empties the tracked set: a
// user chasing other dramas must keep receiving sweeps for them.
func (s *SubscriptionStore) Abandon(ctx context.Context, userID string, dramaID string) error {
	if err := s.validateIds(userID, dramaID); err != nil {
		return err
	}
	return s.client.UpdateTxn(ctx, s.client.keyParser.UserKey(userID), func(tx *redis.Tx) error {
		// Read under WATCH: if another writer mutates the tracked set before
		// commit, the whole transaction retries with a fresh observation.
		tracked, err := tx.SMembers(ctx, s.client.keyParser.UserKey(userID)).Result()
		if err != nil && err != redis.Nil {
			return err
		}

		lastDrama := len(utils.StringSetDiff(tracked, []string{dramaID})) == 0

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SRem(ctx, s.client.keyParser.UserKey(userID), dramaID)
			if lastDrama {
				pipe.SRem(ctx, AllUsersKey, userID)
			}
			return nil
		})
		return err
	})
}

// ListTrackedDramas returns the drama ids userID currently tracks.
func (s *SubscriptionStore) ListTrackedDramas(ctx context.Context, userID string) ([]string, error) {
	dramas, err := s.client.inner.SMembers(ctx, s.client.keyParser.UserKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "fail to list dramas for user %s", userID)
	}
	return dramas, nil
}

// ListAllUsers returns every user tracking at least one drama.
func (s *SubscriptionStore) ListAllUsers(ctx context.Context) ([]string, error) {
	users, err := s.client.inner.SMembers(ctx, AllUsersKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "fail to list users")
	}
	return users, nil
}

func (s *SubscriptionStore) validateIds(userID string, dramaID string) error {
	if !s.client.keyParser.ValidateUserId(userID) {
		return errors.Errorf("invalid user id: %q", userID)
	}
	if !s.client.keyParser.ValidateDramaId(dramaID) {
		return errors.Errorf("invalid drama id: %q", dramaID)
	}
	return nil
}
