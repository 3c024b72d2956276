package fetcher

import (
	"context"

	"github.com/Luismorlan/dramachaser/model"
	"github.com/pkg/errors"
)

// Fetcher retrieves a drama's current state from its remote catalog. Calls
// may block for multiple seconds and must be bounded by an explicit timeout,
// a timed-out fetch is a normal failure, not fatal to the caller.
type Fetcher interface {
	// FetchShowList returns the drama's current show ids in catalog order.
	FetchShowList(ctx context.Context, dramaID string) ([]string, error)

	// FetchDramaName returns the drama's display name.
	FetchDramaName(ctx context.Context, dramaID string) (string, error)
}

// Registry maps a VOD source type to its Fetcher implementation. New source
// types register here without touching the subscription or cache core.
type Registry struct {
	fetchers map[model.VOD]Fetcher
}

func NewRegistry() *Registry {
	return &Registry{fetchers: map[model.VOD]Fetcher{}}
}

func (r *Registry) Register(vod model.VOD, f Fetcher) {
	r.fetchers[vod] = f
}

func (r *Registry) Get(vod model.VOD) (Fetcher, error) {
	f, ok := r.fetchers[vod]
	if !ok {
		return nil, errors.Errorf("no fetcher registered for VOD %q", vod)
	}
	return f, nil
}

// NewDefaultRegistry wires up one fetcher per supported source type.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(model.VODIfvod, NewIfvodFetcher())
	r.Register(model.VODRss, NewRssFetcher())
	return r
}
