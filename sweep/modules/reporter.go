package modules

import (
	"context"
	"encoding/json"

	"github.com/Luismorlan/dramachaser/sweep"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/sirupsen/logrus"
)

type ReporterConfig struct {
	// Name of the reporter.
	Name string
}

// Reporter listens to sweep results and aggregates them into structured
// logs, which is where operational monitoring hooks in.
type Reporter struct {
	Config ReporterConfig

	EventBus *gochannel.GoChannel
}

func NewReporter(config ReporterConfig, e *gochannel.GoChannel) *Reporter {
	return &Reporter{
		Config:   config,
		EventBus: e,
	}
}

func (r *Reporter) RunModule(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := r.EventBus.Subscribe(ctx, sweep.TopicSweepResult)
	if err != nil {
		return err
	}

	for msg := range messages {
		msg.Ack()

		result := sweep.SweepResult{}
		if err := json.Unmarshal(msg.Payload, &result); err != nil {
			return err
		}
		Logger.Log.WithFields(logrus.Fields{
			"sweep_id": result.SweepID,
			"user_id":  result.UserID,
			"tracked":  result.TrackedCount,
			"updated":  result.UpdatedCount,
			"failed":   result.FailedCount,
			"notified": result.Notified,
		}).Info("user sweep finished")
	}

	return nil
}

func (r *Reporter) Shutdown() {}

func (r *Reporter) Name() string {
	return r.Config.Name
}
