package cache

import (
	"context"

	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/store"
	"golang.org/x/sync/singleflight"
)

// MetadataCache resolves and permanently caches drama display names. Unlike
// the freshness cache there is no TTL: a name is assumed immutable for the
// lifetime of the drama id. A failed resolution caches nothing, so later
// calls retry.
type MetadataCache struct {
	client  *store.RedisClient
	fetcher fetcher.Fetcher

	group singleflight.Group
}

func NewMetadataCache(client *store.RedisClient, f fetcher.Fetcher) *MetadataCache {
	return &MetadataCache{
		client:  client,
		fetcher: f,
	}
}

// GetDramaName loads the drama's display name from the store, resolving it
// through the fetcher on first call.
func (c *MetadataCache) GetDramaName(ctx context.Context, dramaID string) (string, error) {
	metadata, err := c.client.GetDramaMetadata(ctx, dramaID)
	if err != nil {
		return "", err
	}
	if metadata != nil {
		return metadata.DramaName, nil
	}

	name, err, _ := c.group.Do(dramaID, func() (interface{}, error) {
		return c.resolve(ctx, dramaID)
	})
	if err != nil {
		return "", err
	}
	return name.(string), nil
}

func (c *MetadataCache) resolve(ctx context.Context, dramaID string) (string, error) {
	metadata, err := c.client.GetDramaMetadata(ctx, dramaID)
	if err != nil {
		return "", err
	}
	if metadata != nil {
		return metadata.DramaName, nil
	}

	name, err := c.fetcher.FetchDramaName(ctx, dramaID)
	if err != nil {
		return "", err
	}
	if err := c.client.SetDramaMetadata(ctx, dramaID, &model.DramaMetadata{DramaName: name}); err != nil {
		return "", err
	}
	return name, nil
}
