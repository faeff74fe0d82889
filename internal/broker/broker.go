package broker

import (
	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// TaskExchange is the direct exchange all task messages go through.
	TaskExchange = "game-scheduler.tasks"

	// DefaultQueue is the single queue task names are routed to.
	DefaultQueue = "game-scheduler.tasks.default"

	defaultRoutingKey = "default"
)

// Client owns the broker connection and channel. It is constructed by
// the process root and passed to whatever needs it - there is no
// package-level instance.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewClient(url string, logger *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to open broker channel")
	}

	return &Client{conn: conn, channel: channel, logger: logger}, nil
}

// SetupTopology declares the task exchange, the default queue, and the
// binding between them. Declarations are idempotent - provisioning can
// run on every startup.
func (c *Client) SetupTopology() error {
	err := c.channel.ExchangeDeclare(
		TaskExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to declare exchange %s", TaskExchange)
	}

	_, err = c.channel.QueueDeclare(
		DefaultQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to declare queue %s", DefaultQueue)
	}

	err = c.channel.QueueBind(DefaultQueue, defaultRoutingKey, TaskExchange, false, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to bind queue %s", DefaultQueue)
	}

	return nil
}

func (c *Client) Close() error {
	if err := c.channel.Close(); err != nil {
		_ = c.conn.Close()
		return err
	}

	return c.conn.Close()
}
