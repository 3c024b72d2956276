package main

import (
	"context"
	"os"

	"github.com/Luismorlan/dramachaser/cache"
	"github.com/Luismorlan/dramachaser/fetcher"
	"github.com/Luismorlan/dramachaser/model"
	"github.com/Luismorlan/dramachaser/server"
	"github.com/Luismorlan/dramachaser/store"
	"github.com/Luismorlan/dramachaser/utils"
	"github.com/Luismorlan/dramachaser/utils/dotenv"
	"github.com/Luismorlan/dramachaser/utils/flag"
	Logger "github.com/Luismorlan/dramachaser/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

// ConfiguredVOD picks the single source catalog type this deployment runs
// against.
func ConfiguredVOD() model.VOD {
	if vod := os.Getenv("DRAMA_VOD"); vod != "" {
		return model.VOD(vod)
	}
	return model.VODIfvod
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	flag.Parse()
	Logger.InitLogger()

	ctx := context.Background()
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

	deps := &server.Deps{
		Subscriptions: store.NewSubscriptionStore(client),
		Freshness:     cache.NewFreshnessCache(client, f, cache.FreshnessWindowFromEnv()),
		Metadata:      cache.NewMetadataCache(client, f),
		VOD:           vod,
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(gintrace.Middleware(flag.ServiceName))

	server.RegisterRoutes(router, deps)

	Logger.Log.Info("api server starts up")
	router.Run(":8080")
}
