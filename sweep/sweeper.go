package sweep

import (
	"context"
	"sync"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/notifier"
	"github.com/Luismorlan/dramachaser/store"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the fan-out of per-drama refreshes within one
// user's sweep. Fetches are the dominant latency source, each may block for
// seconds.
const maxConcurrentFetches = 4

// Sweeper aggregates one user's report and dispatches it. It holds no state
// of its own, all shared state lives in the subscription store and the
// drama caches.
type Sweeper struct {
	subscriptions *store.SubscriptionStore
	freshness     *cache.FreshnessCache
	deliveries    *store.DeliveryLog
	notifier      notifier.Notifier
}

func NewSweeper(subscriptions *store.SubscriptionStore, freshness *cache.FreshnessCache, deliveries *store.DeliveryLog, n notifier.Notifier) *Sweeper {
	return &Sweeper{
		subscriptions: subscriptions,
		freshness:     freshness,
		deliveries:    deliveries,
		notifier:      n,
	}
}

// SweepUser builds the user's report across every tracked drama and sends at
// most one notification. A drama whose fetch fails is skipped for this pass
// without blocking the user's other dramas, and no global lock is held
// across the aggregation.
func (s *Sweeper) SweepUser(ctx context.Context, sweepID string, userID string) *SweepResult {
	result := &SweepResult{SweepID: sweepID, UserID: userID}

	dramaIds, err := s.subscriptions.ListTrackedDramas(ctx, userID)
	if err != nil {
		Logger.Log.Errorf("fail to list dramas for user %s: %v", userID, err)
		return result
	}
	result.TrackedCount = len(dramaIds)

	report := model.Report{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, dramaID := range dramaIds {
		dramaID := dramaID
		g.Go(func() error {
			updates, err := s.freshness.GetUpdates(gctx, dramaID)
			if err != nil {
				// Failed fetches are retried next sweep. Returning nil keeps
				// the group alive for the user's other dramas.
				Logger.Log.Warnf("skip drama %s for user %s: %v", dramaID, userID, err)
				mu.Lock()
				result.FailedCount++
				mu.Unlock()
				return nil
			}
			if len(updates) == 0 {
				return nil
			}
			// The cached delta lives for the whole freshness window, drop
			// whatever this user was already mailed.
			undelivered, err := s.deliveries.FilterUndelivered(gctx, userID, dramaID, updates)
			if err != nil {
				Logger.Log.Warnf("skip drama %s for user %s: %v", dramaID, userID, err)
				mu.Lock()
				result.FailedCount++
				mu.Unlock()
				return nil
			}
			if len(undelivered) == 0 {
				return nil
			}
			mu.Lock()
			report[dramaID] = undelivered
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors, Wait is for completion only.
	g.Wait()

	result.UpdatedCount = len(report)
	if len(report) == 0 {
		return result
	}

	if err := s.notifier.Notify(ctx, userID, report); err != nil {
		// Delivery is at-least-once best-effort: log and move on, the next
		// pass will retry whatever is still within its freshness window.
		Logger.Log.Errorf("fail to notify user %s: %v", userID, err)
		return result
	}
	result.Notified = true

	// Mark only after the send succeeded, a failed send must be retried on
	// the next pass.
	for dramaID, shows := range report {
		if err := s.deliveries.MarkDelivered(ctx, userID, dramaID, shows); err != nil {
			Logger.Log.Errorf("fail to record delivery for user %s drama %s: %v", userID, dramaID, err)
		}
	}
	return result
}

// SweepAll runs one full pass over all users sequentially. This is the cron
// entrypoint, the interval engine fans out per user instead.
func (s *Sweeper) SweepAll(ctx context.Context, sweepID string) ([]*SweepResult, error) {
	users, err := s.subscriptions.ListAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		Logger.Log.Info("no user chases any drama, exit")
		return []*SweepResult{}, nil
	}

	results := []*SweepResult{}
	for _, userID := range users {
		results = append(results, s.SweepUser(ctx, sweepID, userID))
	}
	return results, nil
}
