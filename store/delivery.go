package store

import (
	"context"
	"fmt"

	"github.com/Luismorlan/dramachaser/utils"
	"github.com/pkg/errors"
)

const deliveredKeyPrefix = "delivered"

// DeliveryLog tracks which shows have already been delivered to which user,
// keyed per (user, drama). The freshness cache keeps a drama's delta for the
// whole freshness window, so without this log every sweep inside the window
// would re-mail the same delta. Delivery state is per user: another user
// tracking the same drama still gets the delta on their first sweep.
type DeliveryLog struct {
	client *RedisClient
}

func NewDeliveryLog(client *RedisClient) *DeliveryLog {
	return &DeliveryLog{client: client}
}

func (d *DeliveryLog) key(userID string, dramaID string) string {
	return fmt.Sprintf("%s%s%s%s%s",
		deliveredKeyPrefix, keyDelimiter, userID, keyDelimiter, dramaID)
}

// FilterUndelivered returns the subset of shows not yet delivered to the
// user for this drama, preserving order.
func (d *DeliveryLog) FilterUndelivered(ctx context.Context, userID string, dramaID string, shows []string) ([]string, error) {
	delivered, err := d.client.inner.SMembers(ctx, d.key(userID, dramaID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "fail to load delivery log for user %s", userID)
	}
	return utils.StringSetDiff(shows, delivered), nil
}

// MarkDelivered records shows as delivered to the user. Called only after a
// successful notification, so delivery stays at-least-once.
func (d *DeliveryLog) MarkDelivered(ctx context.Context, userID string, dramaID string, shows []string) error {
	if len(shows) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(shows))
	for _, show := range shows {
		members = append(members, show)
	}
	return d.client.inner.SAdd(ctx, d.key(userID, dramaID), members...).Err()
}
