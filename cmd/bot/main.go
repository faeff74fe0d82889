package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/ajurkovic/game-scheduler/internal/bot"
	"github.com/ajurkovic/game-scheduler/internal/config"
	"github.com/ajurkovic/game-scheduler/internal/modules/guildconfig"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

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

	db, err := sqlx.Open("postgres", config.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	guildConfigs := guildconfig.NewGuildConfigurationRepository(db)

	b := bot.New(config.DiscordToken, guildConfigs, config.Logger)
	if err := b.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
