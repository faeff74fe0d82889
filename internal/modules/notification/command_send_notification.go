package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/jmoiron/sqlx"
)

type SendNotificationCommand struct {
	UserID  int64  `json:"user_id"`
	GameID  string `json:"game_id"`
	Message string `json:"message"`
}

func (c SendNotificationCommand) Validate() error {
	if c.UserID == 0 {
		return fmt.Errorf("invalid UserID - '%d'", c.UserID)
	}

	if c.GameID == "" {
		return fmt.Errorf("invalid GameID - '%s'", c.GameID)
	}

	if c.Message == "" {
		return fmt.Errorf("invalid Message - '%s'", c.Message)
	}

	return nil
}

type SendNotificationCommandHandler struct {
	db       *sqlx.DB
	notifier Notifier
}

func NewSendNotificationCommandHandler(db *sqlx.DB, notifier Notifier) *SendNotificationCommandHandler {
	return &SendNotificationCommandHandler{db, notifier}
}

func (h *SendNotificationCommandHandler) Handle(
	ctx context.Context,
	request SendNotificationCommand,
) (string, error) {
	// The session may have been cancelled between check and send -
	// a reminder for a removed game is dropped silently.
	const query = `
		SELECT
			count(id)
		FROM
			game_sessions
		WHERE
			id = $1;`

	var count int
	err := h.db.GetContext(ctx, &count, query, request.GameID)
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		count = 0
	case err != nil:
		return "", core.NewCommandError(500, err)
	}

	if count == 0 {
		return fmt.Sprintf("game %s no longer exists, notification dropped", request.GameID), nil
	}

	if err := h.notifier.SendDirectMessage(ctx, request.UserID, request.Message); err != nil {
		return "", err
	}

	return fmt.Sprintf("notification sent to user %d for game %s", request.UserID, request.GameID), nil
}
