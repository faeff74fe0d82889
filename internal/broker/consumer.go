package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// TaskHandler executes a named task and returns a human-readable
// result string for the worker log.
type TaskHandler func(ctx context.Context, args map[string]interface{}) (string, error)

// Consumer dispatches messages from the default queue to registered
// handlers. Unknown task names and handler errors are dropped without
// requeueing - there is no retry policy.
type Consumer struct {
	client   *Client
	handlers map[string]TaskHandler
	logger   *zap.Logger
}

func NewConsumer(client *Client, logger *zap.Logger) *Consumer {
	return &Consumer{
		client:   client,
		handlers: make(map[string]TaskHandler),
		logger:   logger,
	}
}

func (c *Consumer) RegisterHandler(name string, handler TaskHandler) error {
	if _, found := c.handlers[name]; found {
		return fmt.Errorf("handler for task %s already registered", name)
	}

	c.handlers[name] = handler
	return nil
}

// Run consumes the default queue until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.client.channel.Consume(
		DefaultQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, open := <-deliveries:
			if !open {
				return fmt.Errorf("broker delivery channel closed")
			}

			if c.dispatch(ctx, delivery.Body) {
				_ = delivery.Ack(false)
			} else {
				_ = delivery.Nack(false, false)
			}
		}
	}
}

// dispatch decodes a task envelope and runs its handler. The returned
// flag reports whether the delivery should be acked - false drops the
// message without requeueing.
func (c *Consumer) dispatch(ctx context.Context, body []byte) bool {
	var task Task
	if err := json.Unmarshal(body, &task); err != nil {
		c.logger.Error("failed to decode task envelope", zap.Error(err))
		return false
	}

	handler, found := c.handlers[task.Name]
	if !found {
		c.logger.Error("unknown task name", zap.String("task", task.Name), zap.String("task_id", task.ID))
		return false
	}

	result, err := handler(ctx, task.Args)
	if err != nil {
		c.logger.Error(
			"task handler failed",
			zap.String("task", task.Name),
			zap.String("task_id", task.ID),
			zap.Error(err),
		)
		return false
	}

	c.logger.Info(
		"task completed",
		zap.String("task", task.Name),
		zap.String("task_id", task.ID),
		zap.String("result", result),
	)
	return true
}
