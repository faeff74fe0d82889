package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/bootstrap"
	"github.com/ajurkovic/game-scheduler/internal/broker"
	"github.com/ajurkovic/game-scheduler/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const databaseReadinessTimeout = 2 * time.Minute

// The init process runs the whole startup sequence once and exits.
// The other processes assume it has completed successfully.
func main() {
	if len(os.Args) > 1 {
		rootPath := os.Args[1]
		if rootPath == "" {
			log.Fatal("root directory path is empty")
		}

		if err := godotenv.Load(path.Join(rootPath, "config.env")); err != nil {
			log.Fatal(err)
		}
	}

	config, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if config.RedisURL != "" {
		opts, err := redis.ParseURL(config.RedisURL)
		if err != nil {
			log.Fatal(err)
		}

		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	brokerClient, err := broker.NewClient(config.AmqpURL, config.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer brokerClient.Close()

	orchestrator := bootstrap.NewOrchestrator(
		config.Logger,
		bootstrap.WaitForDatabase(db, databaseReadinessTimeout),
		bootstrap.ApplyMigrations(db, redisClient),
		bootstrap.VerifySchema(db),
		bootstrap.ProvisionTopology(brokerClient),
	)

	if err := orchestrator.Run(ctx); err != nil {
		log.Fatal(err)
	}

	config.Logger.Info("initialization completed")
}
