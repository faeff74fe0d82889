package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

type JoinSessionCommand struct {
	GuildID   int64  `json:"-"`
	SessionID string `json:"-"`

	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
}

func (c JoinSessionCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID)
	}

	if c.UserID == 0 {
		return fmt.Errorf("invalid UserID - '%d'", c.UserID)
	}

	if c.DisplayName == "" {
		return fmt.Errorf("invalid DisplayName - '%s'", c.DisplayName)
	}

	return nil
}

type JoinSessionCommandHandler struct {
	db *sql.DB
}

func NewJoinSessionCommandHandler(db *sql.DB) *JoinSessionCommandHandler {
	return &JoinSessionCommandHandler{db}
}

func (h *JoinSessionCommandHandler) Handle(
	ctx context.Context,
	request JoinSessionCommand,
) (core.Unit, error) {
	participant := domain.Participant{
		ID:            uuid.NewString(),
		GameSessionID: request.SessionID,
		UserID:        request.UserID,
		DisplayName:   request.DisplayName,
	}

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		if err := requireSession(ctx, tx, request.SessionID); err != nil {
			return err
		}

		// Double joins are rejected by the (game_session_id, user_id)
		// unique constraint, not by application-level locking.
		const stmt = `
			INSERT INTO
				game_participants (id, game_session_id, user_id, display_name)
			VALUES
				(:id, :game_session_id, :user_id, :display_name);`
		_, err := tql.Exec(ctx, tx, stmt, participant)
		return err
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	var pqErr *pq.Error
	switch {
	case err != nil && errors.As(err, &commandErr):
		return core.Unit{}, commandErr
	case err != nil && errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode:
		return core.Unit{}, core.NewCommandError(409, err, core.WithReason("user already joined the session"))
	case err != nil:
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to join session"))
	}

	return core.Unit{}, nil
}

func requireSession(ctx context.Context, tx *sql.Tx, sessionID string) error {
	const query = `
		SELECT
			count(id)
		FROM
			game_sessions
		WHERE
			id = $1;`

	count, err := tql.QueryFirst[int](ctx, tx, query, sessionID)
	if err != nil {
		return err
	}

	if count == 0 {
		return core.NewCommandError(404, fmt.Errorf("session %s not found", sessionID))
	}

	return nil
}
