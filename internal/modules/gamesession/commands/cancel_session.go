package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/tql"
)

// CancelSessionCommand removes the session outright. Participant rows
// and pending reminders go with it through the cascading foreign keys -
// lifecycle state is not tracked in storage.
type CancelSessionCommand struct {
	GuildID   int64  `json:"-"`
	SessionID string `json:"-"`

	OrganizerID int64 `json:"organizer_id"`
}

func (c CancelSessionCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.OrganizerID == 0 {
		return fmt.Errorf("invalid OrganizerID - '%d'", c.OrganizerID)
	}

	return nil
}

type CancelSessionCommandHandler struct {
	db *sql.DB
}

func NewCancelSessionCommandHandler(db *sql.DB) *CancelSessionCommandHandler {
	return &CancelSessionCommandHandler{db}
}

func (h *CancelSessionCommandHandler) Handle(
	ctx context.Context,
	request CancelSessionCommand,
) (core.Unit, error) {
	txFn := func(ctx context.Context, tx *sql.Tx) error {
		if err := requireOrganizer(ctx, tx, request.SessionID, request.OrganizerID); err != nil {
			return err
		}

		const stmt = `
			DELETE FROM
				game_sessions
			WHERE
				id = $1;`
		_, err := tql.Exec(ctx, tx, stmt, request.SessionID)
		return err
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	switch {
	case err != nil && errors.As(err, &commandErr):
		return core.Unit{}, commandErr
	case err != nil:
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to cancel session"))
	}

	return core.Unit{}, nil
}
