package config

import (
	"time"

	"github.com/ajurkovic/game-scheduler/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	AmqpUrlEnv     = "AMQP_URL"
	RedisUrlEnv    = "REDIS_URL"
	RootPathEnv    = "ROOT_PATH"

	DiscordTokenEnv        = "DISCORD_TOKEN"
	BeatIntervalSecondsEnv = "BEAT_INTERVAL_SECONDS"
)

type Config struct {
	Logger *zap.Logger

	Port        int
	DatabaseURL string
	AmqpURL     string

	// Optional. When empty, migration locking is skipped.
	RedisURL string

	// Optional. When empty, the bot runs as a placeholder process.
	DiscordToken string

	BeatInterval time.Duration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)
	amqpURL := env.MustGetString(AmqpUrlEnv)

	redisURL := env.GetStringOrDefault(RedisUrlEnv, "")
	discordToken := env.GetStringOrDefault(DiscordTokenEnv, "")

	beatIntervalSeconds := env.GetIntOrDefault(BeatIntervalSecondsEnv, 60)

	return Config{
		Logger:       logger,
		Port:         port,
		DatabaseURL:  dbURL,
		AmqpURL:      amqpURL,
		RedisURL:     redisURL,
		DiscordToken: discordToken,
		BeatInterval: time.Duration(beatIntervalSeconds) * time.Second,
	}, nil
}
