package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/ajurkovic/game-scheduler/internal/bot"
	"github.com/ajurkovic/game-scheduler/internal/broker"
	"github.com/ajurkovic/game-scheduler/internal/config"
	"github.com/ajurkovic/game-scheduler/internal/modules/core"
	"github.com/ajurkovic/game-scheduler/internal/modules/notification"
	"github.com/ajurkovic/game-scheduler/internal/worker"

	"github.com/eskrenkovic/mediator-go"
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

	brokerClient, err := broker.NewClient(config.AmqpURL, config.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer brokerClient.Close()

	var notifier notification.Notifier
	if config.DiscordToken != "" {
		notifier, err = bot.NewDiscordNotifier(config.DiscordToken)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		notifier = notification.NewLogNotifier(config.Logger)
	}

	core.SetLogger(config.Logger)

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)

	checkNotificationsHandler := notification.NewCheckNotificationsCommandHandler(db, brokerClient, config.Logger)
	err = mediator.RegisterRequestHandler[notification.CheckNotificationsCommand, string](
		checkNotificationsHandler,
	)
	if err != nil {
		log.Fatal(err)
	}

	sendNotificationHandler := notification.NewSendNotificationCommandHandler(db, notifier)
	err = mediator.RegisterRequestHandler[notification.SendNotificationCommand, string](
		sendNotificationHandler,
	)
	if err != nil {
		log.Fatal(err)
	}

	w, err := worker.New(brokerClient, config.BeatInterval, config.Logger)
	if err != nil {
		log.Fatal(err)
	}

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
