package modules

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Luismorlan/dramachaser/store"
	"github.com/Luismorlan/dramachaser/sweep"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type SchedulerConfig struct {
	// Name of the scheduler.
	Name string

	// Fixed cadence between sweep passes.
	SweepEvery time.Duration
}

// Scheduler drives the sweep cadence: each tick it enumerates all users and
// publishes one UserSweepJob per user onto the event bus. A pass over zero
// users is a normal, logged no-op.
type Scheduler struct {
	Config SchedulerConfig

	subscriptions *store.SubscriptionStore

	EventBus *gochannel.GoChannel
}

func NewScheduler(config SchedulerConfig, subscriptions *store.SubscriptionStore, e *gochannel.GoChannel) *Scheduler {
	return &Scheduler{
		Config:        config,
		subscriptions: subscriptions,
		EventBus:      e,
	}
}

func (s *Scheduler) RunModule(ctx context.Context) error {
	for {
		if err := s.PublishSweepPass(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.Config.SweepEvery):
		}
	}
}

// PublishSweepPass emits one pass worth of per-user jobs, grouped under a
// fresh sweep id.
func (s *Scheduler) PublishSweepPass(ctx context.Context) error {
	users, err := s.subscriptions.ListAllUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		Logger.Log.Info("no user chases any drama, skip sweep pass")
		return nil
	}

	sweepID := uuid.New().String()
	for _, userID := range users {
		job := sweep.UserSweepJob{SweepID: sweepID, UserID: userID}
		payload, err := json.Marshal(&job)
		if err != nil {
			return err
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.EventBus.Publish(sweep.TopicPendingReport, msg); err != nil {
			return err
		}
	}
	Logger.Log.Infof("sweep pass %s scheduled for %d users", sweepID, len(users))
	return nil
}

func (s *Scheduler) Shutdown() {}

func (s *Scheduler) Name() string {
	return s.Config.Name
}
