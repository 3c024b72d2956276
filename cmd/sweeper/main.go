package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/notifier"
	"github.com/Luismorlan/dramachaser/store"
	"github.com/Luismorlan/dramachaser/sweep"
	"github.com/Luismorlan/dramachaser/sweep/modules"
	"github.com/Luismorlan/dramachaser/utils"
	"github.com/Luismorlan/dramachaser/utils/dotenv"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

var (
	// RunOnce executes exactly one sweep pass and exits, which is how an
	// external cron invokes the sweeper.
	RunOnce = flag.Bool("once", false, "run a single sweep pass and exit")

	SweepEverySecond = flag.Int("sweep_every_second", 3600, "interval between sweep passes")
)

func ConfiguredVOD() model.VOD {
	if vod := os.Getenv("DRAMA_VOD"); vod != "" {
		return model.VOD(vod)
	}
	return model.VODIfvod
}

// NewConfiguredNotifier picks the delivery channel: "email" (default) or
// "slack". Missing credentials are a configuration error, fatal to the
// invocation.
func NewConfiguredNotifier(metadata *cache.MetadataCache, vod model.VOD) (notifier.Notifier, error) {
	switch os.Getenv("NOTIFIER") {
	case "", "email":
		return notifier.NewEmailNotifier(metadata, vod)
	case "slack":
		return notifier.NewSlackNotifier(metadata, vod)
	default:
		return nil, &model.ConfigurationError{Reason: "NOTIFIER must be 'email' or 'slack'"}
	}
}

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("sweeper shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	flag.Parse()
	Logger.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := store.NewRedisClient(ctx)
	if err != nil {
		Logger.Log.Fatalf("fail to open redis client: %v", err)
	}
	defer client.Close()

	vod := ConfiguredVOD()
	registry := fetcher.NewDefaultRegistry()
	f, err := registry.Get(vod)
	if err != nil {
		Logger.Log.Fatalf("unsupported VOD: %v", err)
	}

	subscriptions := store.NewSubscriptionStore(client)
	freshness := cache.NewFreshnessCache(client, f, cache.FreshnessWindowFromEnv())
	metadata := cache.NewMetadataCache(client, f)

	n, err := NewConfiguredNotifier(metadata, vod)
	if err != nil {
		Logger.Log.Fatalf("fail to build notifier: %v", err)
	}

	sweeper := sweep.NewSweeper(subscriptions, freshness, store.NewDeliveryLog(client), n)

	if *RunOnce {
		if _, err := sweeper.SweepAll(ctx, uuid.New().String()); err != nil {
			Logger.Log.Fatalf("sweep pass failed: %v", err)
		}
		return
	}

	eventbus := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            100,
			BlockPublishUntilSubscriberAck: false,
		},
		watermill.NewStdLogger(false, false),
	)

	engine := sweep.NewEngine([]sweep.Module{
		// Reporter aggregates per-user sweep results into structured logs.
		modules.NewReporter(modules.ReporterConfig{Name: "reporter"}, eventbus),
		// Aggregator consumes per-user jobs, builds reports and notifies.
		modules.NewAggregator(modules.AggregatorConfig{Name: "aggregator"}, sweeper, eventbus),
		// Scheduler enumerates users on a fixed cadence and fans jobs out.
		modules.NewScheduler(modules.SchedulerConfig{
			Name:       "scheduler",
			SweepEvery: time.Duration(*SweepEverySecond) * time.Second,
		}, subscriptions, eventbus),
	}, ctx, cancel, eventbus)

	// Gracefully shutdown on interrupt.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		engine.Shutdown()
	}()

	engine.Run()
}
