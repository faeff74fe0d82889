package broker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Task is the message envelope. Task names are routed to the single
// default queue.
type Task struct {
	ID   string                 `json:"id"`
	Name string                 `json:"task"`
	Args map[string]interface{} `json:"args"`
}

func (c *Client) EnqueueTask(ctx context.Context, name string, args map[string]interface{}) error {
	task := Task{
		ID:   uuid.NewString(),
		Name: name,
		Args: args,
	}

	body, err := json.Marshal(task)
	if err != nil {
		return errors.Wrapf(err, "failed to serialize task %s", name)
	}

	err = c.channel.PublishWithContext(
		ctx,
		TaskExchange,
		defaultRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    task.ID,
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "failed to publish task %s", name)
	}

	c.logger.Info("task enqueued", zap.String("task", name), zap.String("task_id", task.ID))
	return nil
}
