package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/broker"
	"github.com/ajurkovic/game-scheduler/internal/modules/notification"

	"github.com/eskrenkovic/mediator-go"
	"go.uber.org/zap"
)

// Worker consumes the default task queue and periodically enqueues
// check_notifications, standing in for an external beat scheduler.
// Task handlers dispatch through the mediator, so its request handlers
// must be registered before the worker is constructed.
type Worker struct {
	client       *broker.Client
	consumer     *broker.Consumer
	beatInterval time.Duration
	logger       *zap.Logger
}

func New(
	client *broker.Client,
	beatInterval time.Duration,
	logger *zap.Logger,
) (*Worker, error) {
	consumer := broker.NewConsumer(client, logger)

	checkNotifications := func(ctx context.Context, _ map[string]interface{}) (string, error) {
		return mediator.Send[notification.CheckNotificationsCommand, string](
			ctx,
			notification.CheckNotificationsCommand{},
		)
	}
	if err := consumer.RegisterHandler(notification.TaskCheckNotifications, checkNotifications); err != nil {
		return nil, err
	}

	sendNotification := func(ctx context.Context, args map[string]interface{}) (string, error) {
		command, err := decodeArgs[notification.SendNotificationCommand](args)
		if err != nil {
			return "", err
		}

		return mediator.Send[notification.SendNotificationCommand, string](ctx, command)
	}
	if err := consumer.RegisterHandler(notification.TaskSendNotification, sendNotification); err != nil {
		return nil, err
	}

	return &Worker{
		client:       client,
		consumer:     consumer,
		beatInterval: beatInterval,
		logger:       logger,
	}, nil
}

// Run blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	go w.beat(ctx)

	return w.consumer.Run(ctx)
}

func (w *Worker) beat(ctx context.Context) {
	ticker := time.NewTicker(w.beatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.client.EnqueueTask(ctx, notification.TaskCheckNotifications, nil); err != nil {
				w.logger.Error("failed to enqueue check_notifications", zap.Error(err))
			}
		}
	}
}

// decodeArgs maps a task envelope's args onto a typed command through
// a JSON round trip.
func decodeArgs[TCommand any](args map[string]interface{}) (TCommand, error) {
	var command TCommand

	raw, err := json.Marshal(args)
	if err != nil {
		return command, err
	}

	return command, json.Unmarshal(raw, &command)
}
