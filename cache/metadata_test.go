package cache

import (
	"context"
	"testing"

	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/stretchr/testify/assert"
)

func TestDramaNameIsResolvedOnceAndCachedForever(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	f := fetcher.NewFakeFetcher()
	f.Names["drama-1"] = "The Long Ballad"

	c := NewMetadataCache(client, f)

	name, err := c.GetDramaName(ctx, "drama-1")
	assert.Nil(t, err)
	assert.Equal(t, "The Long Ballad", name)
	assert.Equal(t, 1, f.NameFetchCount("drama-1"))

	name, err = c.GetDramaName(ctx, "drama-1")
	assert.Nil(t, err)
	assert.Equal(t, "The Long Ballad", name)
	assert.Equal(t, 1, f.NameFetchCount("drama-1"))
}

func TestFailedResolutionCachesNothing(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	f := fetcher.NewFakeFetcher()

	c := NewMetadataCache(client, f)

	// No name is served yet, resolution fails and must not poison the cache.
	_, err := c.GetDramaName(ctx, "drama-1")
	assert.NotNil(t, err)

	f.Names["drama-1"] = "The Long Ballad"
	name, err := c.GetDramaName(ctx, "drama-1")
	assert.Nil(t, err)
	assert.Equal(t, "The Long Ballad", name)
}
