package fetcher

import (
	"context"
	"sync"
	"time"

	"github.com/Luismorlan/dramachaser/model"
	"github.com/pkg/errors"
)

// FakeFetcher serves canned show lists and names, counting fetches so tests
// can assert on freshness gating and fetch deduplication.
type FakeFetcher struct {
	mu sync.Mutex

	// ShowLists maps drama id to the list the catalog currently serves.
	ShowLists map[string][]string
	// Names maps drama id to its display name.
	Names map[string]string

	// Err, when set, makes every fetch fail.
	Err error
	// Delay is applied to every fetch, to widen race windows in tests.
	Delay time.Duration

	showListFetches map[string]int
	nameFetches     map[string]int
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		ShowLists:       map[string][]string{},
		Names:           map[string]string{},
		showListFetches: map[string]int{},
		nameFetches:     map[string]int{},
	}
}

func (f *FakeFetcher) FetchShowList(ctx context.Context, dramaID string) ([]string, error) {
	time.Sleep(f.Delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showListFetches[dramaID]++
	if f.Err != nil {
		return nil, &model.FetchError{DramaID: dramaID, Err: f.Err}
	}
	shows, ok := f.ShowLists[dramaID]
	if !ok {
		return nil, &model.FetchError{DramaID: dramaID, Err: errors.New("unknown drama")}
	}
	return shows, nil
}

func (f *FakeFetcher) FetchDramaName(ctx context.Context, dramaID string) (string, error) {
	time.Sleep(f.Delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nameFetches[dramaID]++
	if f.Err != nil {
		return "", &model.FetchError{DramaID: dramaID, Err: f.Err}
	}
	name, ok := f.Names[dramaID]
	if !ok {
		return "", &model.FetchError{DramaID: dramaID, Err: errors.New("unknown drama")}
	}
	return name, nil
}

// SetShowList replaces a drama's served list.
func (f *FakeFetcher) SetShowList(dramaID string, shows []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ShowLists[dramaID] = shows
}

// ShowListFetchCount returns how many times a drama's list was fetched.
func (f *FakeFetcher) ShowListFetchCount(dramaID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showListFetches[dramaID]
}

// NameFetchCount returns how many times a drama's name was fetched.
func (f *FakeFetcher) NameFetchCount(dramaID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nameFetches[dramaID]
}
