package fetcher

import (
	"context"

	"github.com/Luismorlan/dramachaser/model"
	"github.com/mmcdole/gofeed"
)

// RssFetcher treats a drama id as a feed URL: shows are the feed's items in
// feed order, identified by GUID, and the drama name is the feed title.
type RssFetcher struct {
	parser *gofeed.Parser
}

func NewRssFetcher() *RssFetcher {
	return &RssFetcher{parser: gofeed.NewParser()}
}

func (f *RssFetcher) FetchShowList(ctx context.Context, dramaID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultFetchTimeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(dramaID, ctx)
	if err != nil {
		return nil, &model.FetchError{DramaID: dramaID, Err: err}
	}

	shows := []string{}
	for _, item := range feed.Items {
		guid := item.GUID
		if guid == "" {
			guid = item.Link
		}
		if guid != "" {
			shows = append(shows, guid)
		}
	}
	return shows, nil
}

func (f *RssFetcher) FetchDramaName(ctx context.Context, dramaID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultFetchTimeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(dramaID, ctx)
	if err != nil {
		return "", &model.FetchError{DramaID: dramaID, Err: err}
	}
	return feed.Title, nil
}
