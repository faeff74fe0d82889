package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type ScheduleReminderCommand struct {
	GuildID   int64  `json:"-"`
	SessionID string `json:"-"`

	// Null schedules "no reminder" - representable on purpose, the row
	// is never picked up by check_notifications.
	ReminderMinutes null.Int `json:"reminder_minutes"`
}

func (c ScheduleReminderCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.ReminderMinutes.Valid && c.ReminderMinutes.Int < 0 {
		return fmt.Errorf("invalid ReminderMinutes - '%d'", c.ReminderMinutes.Int)
	}

	return nil
}

type ScheduleReminderResponse struct {
	ReminderID string `json:"reminder_id"`
}

type ScheduleReminderCommandHandler struct {
	db *sql.DB
}

func NewScheduleReminderCommandHandler(db *sql.DB) *ScheduleReminderCommandHandler {
	return &ScheduleReminderCommandHandler{db}
}

func (h *ScheduleReminderCommandHandler) Handle(
	ctx context.Context,
	request ScheduleReminderCommand,
) (ScheduleReminderResponse, error) {
	reminderID := uuid.NewString()

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const sessionQuery = `
			SELECT
				count(id)
			FROM
				game_sessions
			WHERE
				id = $1;`

		count, err := tql.QueryFirst[int](ctx, tx, sessionQuery, request.SessionID)
		if err != nil {
			return err
		}

		if count == 0 {
			return core.NewCommandError(404, fmt.Errorf("session %s not found", request.SessionID))
		}

		const stmt = `
			INSERT INTO
				notification_schedule (id, game_session_id, reminder_minutes)
			VALUES
				($1, $2, $3);`
		_, err = tql.Exec(ctx, tx, stmt, reminderID, request.SessionID, request.ReminderMinutes)
		return err
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	switch {
	case err != nil && errors.As(err, &commandErr):
		return ScheduleReminderResponse{}, commandErr
	case err != nil:
		return ScheduleReminderResponse{}, core.NewCommandError(500, err, core.WithReason("failed to schedule reminder"))
	}

	return ScheduleReminderResponse{ReminderID: reminderID}, nil
}
