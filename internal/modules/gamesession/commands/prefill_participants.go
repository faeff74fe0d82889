package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/volatiletech/null/v8"
)

type PrefillEntry struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// PrefillParticipantsCommand bulk-inserts participants ahead of actual
// sign-up. Positions are assigned in the order entries are given,
// continuing after any previously pre-filled rows.
type PrefillParticipantsCommand struct {
	GuildID   int64  `json:"-"`
	SessionID string `json:"-"`

	OrganizerID int64          `json:"organizer_id"`
	Entries     []PrefillEntry `json:"entries"`
}

func (c PrefillParticipantsCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.OrganizerID == 0 {
		return fmt.Errorf("invalid OrganizerID - '%d'", c.OrganizerID)
	}

	if len(c.Entries) == 0 {
		return fmt.Errorf("invalid Entries - empty")
	}

	for _, entry := range c.Entries {
		if entry.UserID == 0 {
			return fmt.Errorf("invalid Entries - UserID '%d'", entry.UserID)
		}

		if entry.DisplayName == "" {
			return fmt.Errorf("invalid Entries - DisplayName '%s'", entry.DisplayName)
		}
	}

	return nil
}

type PrefillParticipantsCommandHandler struct {
	db *sql.DB
}

func NewPrefillParticipantsCommandHandler(db *sql.DB) *PrefillParticipantsCommandHandler {
	return &PrefillParticipantsCommandHandler{db}
}

func (h *PrefillParticipantsCommandHandler) Handle(
	ctx context.Context,
	request PrefillParticipantsCommand,
) (core.Unit, error) {
	txFn := func(ctx context.Context, tx *sql.Tx) error {
		if err := requireOrganizer(ctx, tx, request.SessionID, request.OrganizerID); err != nil {
			return err
		}

		const positionQuery = `
			SELECT
				coalesce(max(pre_filled_position), 0)
			FROM
				game_participants
			WHERE
				game_session_id = $1;`

		offset, err := tql.QueryFirst[int](ctx, tx, positionQuery, request.SessionID)
		if err != nil {
			return err
		}

		const stmt = `
			INSERT INTO
				game_participants (id, game_session_id, user_id, display_name, pre_populated, pre_filled_position)
			VALUES
				($1, $2, $3, $4, true, $5);`

		for i, entry := range request.Entries {
			position := null.IntFrom(offset + i + 1)
			_, err := tql.Exec(ctx, tx, stmt, uuid.NewString(), request.SessionID, entry.UserID, entry.DisplayName, position)
			if err != nil {
				return err
			}
		}

		return nil
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	var pqErr *pq.Error
	switch {
	case err != nil && errors.As(err, &commandErr):
		return core.Unit{}, commandErr
	case err != nil && errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode:
		return core.Unit{}, core.NewCommandError(409, err, core.WithReason("a pre-filled user already joined the session"))
	case err != nil:
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to pre-fill participants"))
	}

	return core.Unit{}, nil
}

func requireOrganizer(ctx context.Context, tx *sql.Tx, sessionID string, organizerID int64) error {
	const query = `
		SELECT
			organizer_id
		FROM
			game_sessions
		WHERE
			id = $1;`

	sessionOrganizerID, err := tql.QueryFirst[int64](ctx, tx, query, sessionID)
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		return core.NewCommandError(404, fmt.Errorf("session %s not found", sessionID))
	case err != nil:
		return err
	}

	if sessionOrganizerID != organizerID {
		return core.NewCommandError(403, fmt.Errorf("user %d is not the session organizer", organizerID))
	}

	return nil
}
