package cache

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/store"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"golang.org/x/sync/singleflight"
)

// DefaultFreshnessWindow is how long a cached observation stays trusted
// without a re-fetch.
const DefaultFreshnessWindow = 3600 * time.Second

// FreshnessWindowFromEnv reads DRAMA_FRESHNESS_SECOND, falling back to the
// default window when unset or malformed.
func FreshnessWindowFromEnv() time.Duration {
	raw := os.Getenv("DRAMA_FRESHNESS_SECOND")
	if raw == "" {
		return DefaultFreshnessWindow
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		Logger.Log.Warnf("invalid DRAMA_FRESHNESS_SECOND %q, using default", raw)
		return DefaultFreshnessWindow
	}
	return time.Duration(seconds) * time.Second
}

// FreshnessCache is the per-drama delta engine. One cache entry exists per
// drama id regardless of how many users track it, so a drama is fetched at
// most once per freshness window, not once per (user, drama) pair.
type FreshnessCache struct {
	client  *store.RedisClient
	fetcher fetcher.Fetcher
	window  time.Duration

	// Collapses concurrent cache-miss refreshes of the same drama into one
	// in-flight fetch, all callers await the winner's result.
	group singleflight.Group
}

func NewFreshnessCache(client *store.RedisClient, f fetcher.Fetcher, window time.Duration) *FreshnessCache {
	return &FreshnessCache{
		client:  client,
		fetcher: f,
		window:  window,
	}
}

// GetUpdates returns the drama's new shows since the previous observation.
// Within the freshness window the cached delta is returned with no external
// fetch. Outside it (or on first sighting) the drama is re-fetched, the
// delta recomputed, and the cache entry replaced. A fetch failure leaves the
// stale entry untouched and surfaces a FetchError, it never masquerades as
// "no new shows".
func (c *FreshnessCache) GetUpdates(ctx context.Context, dramaID string) ([]string, error) {
	record, err := c.client.GetDramaRecord(ctx, dramaID)
	if err != nil {
		return nil, err
	}
	if c.isFresh(record) {
		return record.DeltaShowList, nil
	}

	delta, err, _ := c.group.Do(dramaID, func() (interface{}, error) {
		return c.refresh(ctx, dramaID)
	})
	if err != nil {
		return nil, err
	}
	return delta.([]string), nil
}

// ShowList returns the drama's last observed show list without triggering a
// refresh. Used by the UI listing.
func (c *FreshnessCache) ShowList(ctx context.Context, dramaID string) ([]string, error) {
	record, err := c.client.GetDramaRecord(ctx, dramaID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []string{}, nil
	}
	return record.CurrentShowList, nil
}

func (c *FreshnessCache) refresh(ctx context.Context, dramaID string) ([]string, error) {
	// Re-check under the flight: a caller queued behind the winning refresh
	// must reuse its result instead of fetching again.
	record, err := c.client.GetDramaRecord(ctx, dramaID)
	if err != nil {
		return nil, err
	}
	if c.isFresh(record) {
		return record.DeltaShowList, nil
	}

	currentShowList, err := c.fetcher.FetchShowList(ctx, dramaID)
	if err != nil {
		return nil, err
	}

	// First sighting is baseline, not news: absent a previous list the delta
	// is empty no matter what the catalog currently lists.
	delta := []string{}
	if record != nil {
		delta = computeDelta(currentShowList, record.CurrentShowList)
	}

	updated := &model.DramaRecord{
		CurrentShowList: currentShowList,
		LastUpdatedTime: time.Now().Unix(),
		DeltaShowList:   delta,
	}
	if err := c.client.SetDramaRecord(ctx, dramaID, updated); err != nil {
		return nil, err
	}
	return delta, nil
}

func (c *FreshnessCache) isFresh(record *model.DramaRecord) bool {
	return record != nil &&
		time.Since(time.Unix(record.LastUpdatedTime, 0)) <= c.window
}
