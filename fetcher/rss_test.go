package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const feedPage = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Drama Weekly</title>
<item><title>EP02</title><guid>https://example.com/ep2</guid></item>
<item><title>EP01</title><guid>https://example.com/ep1</guid></item>
</channel>
</rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRssFetchShowListKeepsFeedOrder(t *testing.T) {
	srv := newFeedServer(t)
	f := NewRssFetcher()

	shows, err := f.FetchShowList(context.Background(), srv.URL)
	assert.Nil(t, err)
	assert.Equal(t, []string{"https://example.com/ep2", "https://example.com/ep1"}, shows)
}

func TestRssFetchDramaName(t *testing.T) {
	srv := newFeedServer(t)
	f := NewRssFetcher()

	name, err := f.FetchDramaName(context.Background(), srv.URL)
	assert.Nil(t, err)
	assert.Equal(t, "Drama Weekly", name)
}

func TestRssFetchFailureSurfacesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := NewRssFetcher()
	_, err := f.FetchShowList(context.Background(), srv.URL)
	assert.NotNil(t, err)
}
