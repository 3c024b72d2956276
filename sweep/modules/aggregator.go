package modules

import (
	"context"
	"encoding/json"

	"github.com/Luismorlan/dramachaser/sweep"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type AggregatorConfig struct {
	// Name of the aggregator.
	Name string
}

// Aggregator consumes per-user sweep jobs, builds each user's report through
// the sweeper core and publishes the outcome for the reporter. Users are
// processed concurrently, per-user fetch fan-out is bounded inside the
// sweeper.
type Aggregator struct {
	Config AggregatorConfig

	sweeper *sweep.Sweeper

	EventBus *gochannel.GoChannel
}

func NewAggregator(config AggregatorConfig, sweeper *sweep.Sweeper, e *gochannel.GoChannel) *Aggregator {
	return &Aggregator{
		Config:   config,
		sweeper:  sweeper,
		EventBus: e,
	}
}

// After a user's sweep finished, publish its result for the reporter.
func (a *Aggregator) PublishSweepResult(result *sweep.SweepResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return a.EventBus.Publish(sweep.TopicSweepResult, msg)
}

func (a *Aggregator) RunModule(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := a.EventBus.Subscribe(ctx, sweep.TopicPendingReport)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		job := sweep.UserSweepJob{}
		if err := json.Unmarshal(msg.Payload, &job); err != nil {
			return err
		}

		go func(job sweep.UserSweepJob) {
			result := a.sweeper.SweepUser(ctx, job.SweepID, job.UserID)
			if err := a.PublishSweepResult(result); err != nil {
				Logger.Log.Errorf("fail to publish result for user %s: %v", job.UserID, err)
			}
		}(job)
	}

	return nil
}

func (a *Aggregator) Shutdown() {}

func (a *Aggregator) Name() string {
	return a.Config.Name
}
