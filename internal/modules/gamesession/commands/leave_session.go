package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/tql"
)

type LeaveSessionCommand struct {
	GuildID   int64  `json:"-"`
	SessionID string `json:"-"`

	UserID int64 `json:"user_id"`
}

func (c LeaveSessionCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == 0 {
		return fmt.Errorf("invalid UserID - '%d'", c.UserID)
	}

	return nil
}

type LeaveSessionCommandHandler struct {
	db *sql.DB
}

func NewLeaveSessionCommandHandler(db *sql.DB) *LeaveSessionCommandHandler {
	return &LeaveSessionCommandHandler{db}
}

func (h *LeaveSessionCommandHandler) Handle(
	ctx context.Context,
	request LeaveSessionCommand,
) (core.Unit, error) {
	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			DELETE FROM
				game_participants
			WHERE
				game_session_id = $1 AND user_id = $2;`

		result, err := tql.Exec(ctx, tx, stmt, request.SessionID, request.UserID)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
			return core.NewCommandError(404, fmt.Errorf("user %d is not in session %s", request.UserID, request.SessionID))
		}

		return nil
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	switch {
	case err != nil && errors.As(err, &commandErr):
		return core.Unit{}, commandErr
	case err != nil:
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to leave session"))
	}

	return core.Unit{}, nil
}
