package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func envelope(t *testing.T, name string, args map[string]interface{}) []byte {
	t.Helper()

	body, err := json.Marshal(Task{ID: "task-1", Name: name, Args: args})
	require.NoError(t, err)

	return body
}

func Test_RegisterHandler_Rejects_Duplicate_Task_Name(t *testing.T) {
	// Arrange
	consumer := NewConsumer(nil, zap.NewNop())

	handler := func(context.Context, map[string]interface{}) (string, error) {
		return "", nil
	}

	require.NoError(t, consumer.RegisterHandler("send_notification", handler))

	// Act
	err := consumer.RegisterHandler("send_notification", handler)

	// Assert
	require.Error(t, err)
}

func Test_Dispatch_Drops_Unknown_Task(t *testing.T) {
	// Arrange
	consumer := NewConsumer(nil, zap.NewNop())

	// Act
	ack := consumer.dispatch(context.Background(), envelope(t, "no_such_task", nil))

	// Assert
	require.False(t, ack)
}

func Test_Dispatch_Drops_Malformed_Envelope(t *testing.T) {
	// Arrange
	consumer := NewConsumer(nil, zap.NewNop())

	// Act
	ack := consumer.dispatch(context.Background(), []byte("not json"))

	// Assert
	require.False(t, ack)
}

func Test_Dispatch_Acks_When_Handler_Succeeds(t *testing.T) {
	// Arrange
	consumer := NewConsumer(nil, zap.NewNop())

	var receivedArgs map[string]interface{}
	handler := func(_ context.Context, args map[string]interface{}) (string, error) {
		receivedArgs = args
		return "done", nil
	}
	require.NoError(t, consumer.RegisterHandler("check_notifications", handler))

	args := map[string]interface{}{"session_id": "abc"}

	// Act
	ack := consumer.dispatch(context.Background(), envelope(t, "check_notifications", args))

	// Assert
	require.True(t, ack)
	require.Equal(t, args, receivedArgs)
}

func Test_Dispatch_Drops_When_Handler_Fails(t *testing.T) {
	// Arrange
	consumer := NewConsumer(nil, zap.NewNop())

	handler := func(context.Context, map[string]interface{}) (string, error) {
		return "", fmt.Errorf("handler failure")
	}
	require.NoError(t, consumer.RegisterHandler("check_notifications", handler))

	// Act
	ack := consumer.dispatch(context.Background(), envelope(t, "check_notifications", nil))

	// Assert
	require.False(t, ack)
}
