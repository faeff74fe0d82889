package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/domain"

	"github.com/eskrenkovic/tql"
)

type GetSessionQuery struct {
	GuildID   int64
	SessionID string
}

func (q GetSessionQuery) Validate() error {
	if q.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", q.GuildID)
	}

	if q.SessionID == "" {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID)
	}

	return nil
}

type SessionDetails struct {
	Session      domain.Session       `json:"session"`
	Participants []domain.Participant `json:"participants"`
}

type GetSessionQueryHandler struct {
	db *sql.DB
}

func NewGetSessionQueryHandler(db *sql.DB) *GetSessionQueryHandler {
	return &GetSessionQueryHandler{db}
}

func (h *GetSessionQueryHandler) Handle(
	ctx context.Context,
	request GetSessionQuery,
) (SessionDetails, error) {
	var details SessionDetails

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const sessionQuery = `
			SELECT
				*
			FROM
				game_sessions
			WHERE
				id = $1;`

		session, err := tql.QueryFirst[domain.Session](ctx, tx, sessionQuery, request.SessionID)
		switch {
		case err != nil && errors.Is(err, sql.ErrNoRows):
			return core.NewCommandError(404, fmt.Errorf("session %s not found", request.SessionID))
		case err != nil:
			return err
		}

		const participantsQuery = `
			SELECT
				*
			FROM
				game_participants
			WHERE
				game_session_id = $1
			ORDER BY
				joined_at, id;`

		participants, err := tql.Query[domain.Participant](ctx, tx, participantsQuery, request.SessionID)
		if err != nil {
			return err
		}

		details = SessionDetails{Session: session, Participants: participants}
		return nil
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	switch {
	case err != nil && errors.As(err, &commandErr):
		return SessionDetails{}, commandErr
	case err != nil:
		return SessionDetails{}, core.NewCommandError(500, err, core.WithReason("failed to load session"))
	}

	return details, nil
}
