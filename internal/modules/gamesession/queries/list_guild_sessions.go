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

type ListGuildSessionsQuery struct {
	GuildID int64
}

func (q ListGuildSessionsQuery) Validate() error {
	if q.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", q.GuildID)
	}

	return nil
}

type ListGuildSessionsQueryHandler struct {
	db *sql.DB
}

func NewListGuildSessionsQueryHandler(db *sql.DB) *ListGuildSessionsQueryHandler {
	return &ListGuildSessionsQueryHandler{db}
}

func (h *ListGuildSessionsQueryHandler) Handle(
	ctx context.Context,
	request ListGuildSessionsQuery,
) ([]domain.Session, error) {
	sessions := []domain.Session{}

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		// The guild predicate is redundant with the row-level-security
		// policy but keeps the query meaningful on its own.
		const query = `
			SELECT
				*
			FROM
				game_sessions
			WHERE
				guild_id = $1
			ORDER BY
				scheduled_at;`

		var err error
		sessions, err = tql.Query[domain.Session](ctx, tx, query, request.GuildID)
		return err
	}

	err := core.GuildTx(ctx, h.db, request.GuildID, txFn)

	var commandErr core.CommandError
	switch {
	case err != nil && errors.As(err, &commandErr):
		return nil, commandErr
	case err != nil:
		return nil, core.NewCommandError(500, err, core.WithReason("failed to list sessions"))
	}

	return sessions, nil
}
