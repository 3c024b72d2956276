package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T) *RedisClient {
	mr := miniredis.RunT(t)
	client, err := NewRedisClientFromOptions(context.Background(), &redis.Options{Addr: mr.Addr()})
	assert.Nil(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestChaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	assert.Nil(t, s.Chase(ctx, "alice", "drama-1"))
	assert.Nil(t, s.Chase(ctx, "alice", "drama-1"))

	dramas, err := s.ListTrackedDramas(ctx, "alice")
	assert.Nil(t, err)
	assert.Equal(t, []string{"drama-1"}, dramas)

	users, err := s.ListAllUsers(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestAbandonKeepsUserWithRemainingDramas(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	assert.Nil(t, s.Chase(ctx, "alice", "drama-1"))
	assert.Nil(t, s.Chase(ctx, "alice", "drama-2"))

	assert.Nil(t, s.Abandon(ctx, "alice", "drama-1"))

	dramas, err := s.ListTrackedDramas(ctx, "alice")
	assert.Nil(t, err)
	assert.Equal(t, []string{"drama-2"}, dramas)

	// alice still tracks drama-2, she must stay in the global set.
	users, err := s.ListAllUsers(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestAbandonLastDramaRetractsUser(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	assert.Nil(t, s.Chase(ctx, "alice", "drama-1"))
	assert.Nil(t, s.Abandon(ctx, "alice", "drama-1"))

	dramas, err := s.ListTrackedDramas(ctx, "alice")
	assert.Nil(t, err)
	assert.Empty(t, dramas)

	users, err := s.ListAllUsers(ctx)
	assert.Nil(t, err)
	assert.Empty(t, users)
}

func TestAbandonUntrackedDramaIsNoop(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	assert.Nil(t, s.Chase(ctx, "alice", "drama-1"))
	assert.Nil(t, s.Abandon(ctx, "alice", "never-chased"))

	dramas, err := s.ListTrackedDramas(ctx, "alice")
	assert.Nil(t, err)
	assert.Equal(t, []string{"drama-1"}, dramas)

	users, err := s.ListAllUsers(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestMutationRejectsInvalidIds(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	assert.NotNil(t, s.Chase(ctx, "", "drama-1"))
	assert.NotNil(t, s.Chase(ctx, "users", "drama-1"))
	assert.NotNil(t, s.Chase(ctx, "alice:metadata", "drama-1"))
	assert.NotNil(t, s.Chase(ctx, "alice", ""))
	assert.NotNil(t, s.Chase(ctx, "alice", "drama-1:metadata"))
	assert.NotNil(t, s.Abandon(ctx, "users", "drama-1"))

	// A feed URL is a legitimate drama id.
	assert.Nil(t, s.Chase(ctx, "alice", "https://example.com/feed.xml"))
}

func TestConcurrentChaseConvergesWithoutLostUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.Nil(t, s.Chase(ctx, "alice", fmt.Sprintf("drama-%d", i)))
		}(i)
	}
	wg.Wait()

	dramas, err := s.ListTrackedDramas(ctx, "alice")
	assert.Nil(t, err)
	assert.Equal(t, n, len(dramas))
}

func TestConcurrentChaseAndAbandonInterleaved(t *testing.T) {
	ctx := context.Background()
	s := NewSubscriptionStore(newTestClient(t))

	const n = 16
	for i := 0; i < n; i++ {
		assert.Nil(t, s.Chase(ctx, "alice", fmt.Sprintf("drama-%d", i)))
	}

	// Abandon the first half while chasing a fresh batch.
	var wg sync.WaitGroup
	for i := 0; i < n/2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.Nil(t, s.Abandon(ctx, "alice", fmt.Sprintf("drama-%d", i)))
		}(i)
	}
	for i := n; i < n+n/2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.Nil(t, s.Chase(ctx, "alice", fmt.Sprintf("drama-%d", i)))
		}(i)
	}
	wg.Wait()

	dramas, err := s.ListTrackedDramas(ctx, "alice")
	assert.Nil(t, err)
	assert.Equal(t, n, len(dramas))
	for i := n / 2; i < n+n/2; i++ {
		assert.Contains(t, dramas, fmt.Sprintf("drama-%d", i))
	}

	users, err := s.ListAllUsers(ctx)
	assert.Nil(t, err)
	assert.Equal(t, []string{"alice"}, users)
}
