package notifier

import (
	"context"
	"sort"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
)

// Notifier delivers one digest to one user. Callers never pass an empty
// report, a user with nothing new gets no call at all.
type Notifier interface {
	Notify(ctx context.Context, userID string, report model.Report) error
}

// digestEntry is one drama's row in a rendered digest.
type digestEntry struct {
	DramaName string
	DramaURL  string
	ShowURLs  []string
}

// buildDigest resolves drama names through the metadata cache and showIds
// into playable links. A name that cannot be resolved falls back to the raw
// drama id rather than failing the whole digest.
func buildDigest(ctx context.Context, metadata *cache.MetadataCache, vod model.VOD, report model.Report) []digestEntry {
	dramaIds := make([]string, 0, len(report))
	for dramaID := range report {
		dramaIds = append(dramaIds, dramaID)
	}
	// Deterministic digest ordering.
	sort.Strings(dramaIds)

	entries := []digestEntry{}
	for _, dramaID := range dramaIds {
		name, err := metadata.GetDramaName(ctx, dramaID)
		if err != nil {
			Logger.Log.Warnf("fail to resolve name for drama %s: %v", dramaID, err)
			name = dramaID
		}
		showURLs := []string{}
		for _, showID := range report[dramaID] {
			showURLs = append(showURLs, fetcher.PlayURL(vod, showID))
		}
		entries = append(entries, digestEntry{
			DramaName: name,
			DramaURL:  fetcher.DetailURL(vod, dramaID),
			ShowURLs:  showURLs,
		})
	}
	return entries
}
