package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Luismorlan/dramachaser/model"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisClient wraps the process-wide redis connection. It is opened once at
// process start and passed by reference to every component that needs state,
// there is no ambient singleton.
type RedisClient struct {
	inner     *redis.Client
	keyParser RedisKeyParser
}

// NewRedisClient connects to the redis instance configured through
// REDIS_HOST / REDIS_PORT / REDIS_PASSWD and ping-checks the connection.
func NewRedisClient(ctx context.Context) (*RedisClient, error) {
	return NewRedisClientFromOptions(ctx, &redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
}

// NewRedisClientFromOptions is the injectable constructor, used by tests to
// point the client at an ephemeral redis.
func NewRedisClientFromOptions(ctx context.Context, opts *redis.Options) (*RedisClient, error) {
	inner := redis.NewClient(opts)
	if _, err := inner.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "fail to connect to redis")
	}
	return &RedisClient{
		inner:     inner,
		keyParser: RedisKeyParser{delimiter: keyDelimiter},
	}, nil
}

func (c *RedisClient) Close() error {
	return c.inner.Close()
}

// GetDramaRecord loads the cached observation for a drama. A missing record
// is returned as (nil, nil), callers treat it as a first sighting.
func (c *RedisClient) GetDramaRecord(ctx context.Context, dramaID string) (*model.DramaRecord, error) {
	serialized, err := c.inner.Get(ctx, c.keyParser.DramaKey(dramaID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fail to load record for drama %s", dramaID)
	}
	record := model.DramaRecord{}
	if err := json.Unmarshal([]byte(serialized), &record); err != nil {
		return nil, errors.Wrapf(err, "fail to decode record for drama %s", dramaID)
	}
	return &record, nil
}

// SetDramaRecord atomically replaces the cached observation for a drama.
func (c *RedisClient) SetDramaRecord(ctx context.Context, dramaID string, record *model.DramaRecord) error {
	serialized, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "fail to encode record for drama %s", dramaID)
	}
	return c.inner.Set(ctx, c.keyParser.DramaKey(dramaID), serialized, 0).Err()
}

// GetDramaMetadata loads the write-once metadata for a drama. A missing entry
// is returned as (nil, nil).
func (c *RedisClient) GetDramaMetadata(ctx context.Context, dramaID string) (*model.DramaMetadata, error) {
	serialized, err := c.inner.Get(ctx, c.keyParser.MetadataKey(dramaID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fail to load metadata for drama %s", dramaID)
	}
	metadata := model.DramaMetadata{}
	if err := json.Unmarshal([]byte(serialized), &metadata); err != nil {
		return nil, errors.Wrapf(err, "fail to decode metadata for drama %s", dramaID)
	}
	return &metadata, nil
}

// SetDramaMetadata stores drama metadata. SetNX keeps the first resolved
// value stable even if two resolutions race.
func (c *RedisClient) SetDramaMetadata(ctx context.Context, dramaID string, metadata *model.DramaMetadata) error {
	serialized, err := json.Marshal(metadata)
	if err != nil {
		return errors.Wrapf(err, "fail to encode metadata for drama %s", dramaID)
	}
	return c.inner.SetNX(ctx, c.keyParser.MetadataKey(dramaID), serialized, 0).Err()
}
