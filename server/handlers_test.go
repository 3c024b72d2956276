package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

type routerFixture struct {
	client  *store.RedisClient
	deps    *Deps
	fetcher *fetcher.FakeFetcher
}

func newTestRouter(t *testing.T) (*gin.Engine, *routerFixture) {
	mr := miniredis.RunT(t)
	client, err := store.NewRedisClientFromOptions(context.Background(), &redis.Options{Addr: mr.Addr()})
	assert.Nil(t, err)
	t.Cleanup(func() { client.Close() })

	f := fetcher.NewFakeFetcher()
	deps := &Deps{
		Subscriptions: store.NewSubscriptionStore(client),
		Freshness:     cache.NewFreshnessCache(client, f, cache.DefaultFreshnessWindow),
		Metadata:      cache.NewMetadataCache(client, f),
		VOD:           model.VODIfvod,
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, deps)
	return router, &routerFixture{client: client, deps: deps, fetcher: f}
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChaseAndAbandonRoutes(t *testing.T) {
	router, fx := newTestRouter(t)

	w := postForm(router, "/chase", url.Values{"user_id": {"alice"}, "drama_id": {"drama-1"}})
	assert.Equal(t, http.StatusOK, w.Code)

	dramas, err := fx.deps.Subscriptions.ListTrackedDramas(context.Background(), "alice")
	assert.Nil(t, err)
	assert.Equal(t, []string{"drama-1"}, dramas)

	w = postForm(router, "/abandon", url.Values{"user_id": {"alice"}, "drama_id": {"drama-1"}})
	assert.Equal(t, http.StatusOK, w.Code)

	dramas, err = fx.deps.Subscriptions.ListTrackedDramas(context.Background(), "alice")
	assert.Nil(t, err)
	assert.Empty(t, dramas)
}

func TestChaseRejectsMissingFields(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postForm(router, "/chase", url.Values{"user_id": {"alice"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDramaMetadataRoute(t *testing.T) {
	router, fx := newTestRouter(t)

	fx.fetcher.Names["drama-1"] = "The Long Ballad"
	assert.Nil(t, fx.deps.Subscriptions.Chase(context.Background(), "alice", "drama-1"))
	err := fx.client.SetDramaRecord(context.Background(), "drama-1", &model.DramaRecord{
		CurrentShowList: []string{"ep-1"},
		LastUpdatedTime: 0,
		DeltaShowList:   []string{},
	})
	assert.Nil(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dramas?user_id=alice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	dramas := map[string]model.DramaInfo{}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &dramas))
	info, ok := dramas["https://www.ifvod.tv/detail?id=drama-1"]
	assert.True(t, ok)
	assert.Equal(t, "The Long Ballad", info.DramaName)
	assert.Equal(t, []string{"https://www.ifvod.tv/play?id=ep-1"}, info.ShowList)
}

func TestListUsersRoute(t *testing.T) {
	router, fx := newTestRouter(t)

	assert.Nil(t, fx.deps.Subscriptions.Chase(context.Background(), "alice", "drama-1"))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}
