package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
	"github.com/ajurkovic/game-scheduler/internal/modules/gamesession/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type CreateSessionCommand struct {
	GuildID int64 `json:"-"`

	ChannelID   int64     `json:"channel_id"`
	OrganizerID int64     `json:"organizer_id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	MaxPlayers  int       `json:"max_players"`

	Description             null.String `json:"description"`
	SignupInstructions      null.String `json:"signup_instructions"`
	ExpectedDurationMinutes null.Int    `json:"expected_duration_minutes"`
	NotifyRoleIDs           []int64     `json:"notify_role_ids"`
	Where                   null.String `json:"where"`

	// When set, title, max players, duration, and description default
	// from the template unless given explicitly.
	TemplateID null.String `json:"template_id"`
}

func (c CreateSessionCommand) Validate() error {
	if c.GuildID == 0 {
		return fmt.Errorf("invalid GuildID - '%d'", c.GuildID)
	}

	if c.ChannelID == 0 {
		return fmt.Errorf("invalid ChannelID - '%d'", c.ChannelID)
	}

	if c.OrganizerID == 0 {
		return fmt.Errorf("invalid OrganizerID - '%d'", c.OrganizerID)
	}

	if c.ScheduledAt.IsZero() {
		return fmt.Errorf("invalid ScheduledAt - '%s'", c.ScheduledAt)
	}

	if c.Title == "" && !c.TemplateID.Valid {
		return fmt.Errorf("invalid Title - '%s'", c.Title)
	}

	if c.MaxPlayers <= 0 && !c.TemplateID.Valid {
		return fmt.Errorf("invalid MaxPlayers - '%d'", c.MaxPlayers)
	}

	return nil
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type CreateSessionCommandHandler struct {
	db *sql.DB
}

func NewCreateSessionCommandHandler(db *sql.DB) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{db}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (CreateSessionResponse, error) {
	session := domain.Session{
		ID:                      uuid.NewString(),
		GuildID:                 request.GuildID,
		ChannelID:               request.ChannelID,
		OrganizerID:             request.OrganizerID,
		Title:                   request.Title,
		ScheduledAt:             request.ScheduledAt,
		MaxPlayers:              request.MaxPlayers,
		Description:             request.Description,
		SignupInstructions:      request.SignupInstructions,
		ExpectedDurationMinutes: request.ExpectedDurationMinutes,
		NotifyRoleIDs:           core.SnowflakeList(request.NotifyRoleIDs),
		Where:                   request.Where,
	}

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		if request.TemplateID.Valid {
			if err := applyTemplate(ctx, tx, request.TemplateID.String, &session); err != nil {
				return err
			}
		}

		const stmt = `
			INSERT INTO
				game_sessions (
					id, guild_id, channel_id, organizer_id, title, scheduled_at,
					max_players, description, signup_instructions,
					expected_duration_minutes, notify_role_ids, "where"
				)
			VALUES
				(
					:id, :guild_id, :channel_id, :organizer_id, :title, :scheduled_at,
					:max_players, :description, :signup_instructions,
					:expected_duration_minutes, :notify_role_ids, :where
				);`
		_, err := tql.Exec(ctx, tx, stmt, session)
		return err
	}

	if err := core.GuildTx(ctx, h.db, request.GuildID, txFn); err != nil {
		var commandErr core.CommandError
		if errors.As(err, &commandErr) {
			return CreateSessionResponse{}, commandErr
		}

		return CreateSessionResponse{}, core.NewCommandError(500, err, core.WithReason("failed to create session"))
	}

	return CreateSessionResponse{SessionID: session.ID}, nil
}

type sessionTemplate struct {
	ID                      string      `db:"id"`
	Title                   string      `db:"title"`
	MaxPlayers              int         `db:"max_players"`
	ExpectedDurationMinutes null.Int    `db:"expected_duration_minutes"`
	Description             null.String `db:"description"`
}

func applyTemplate(ctx context.Context, tx *sql.Tx, templateID string, session *domain.Session) error {
	const query = `
		SELECT
			id, title, max_players, expected_duration_minutes, description
		FROM
			game_templates
		WHERE
			id = $1;`

	template, err := tql.QueryFirst[sessionTemplate](ctx, tx, query, templateID)
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		return core.NewCommandError(404, err, core.WithReason("template not found"))
	case err != nil:
		return err
	}

	if session.Title == "" {
		session.Title = template.Title
	}

	if session.MaxPlayers <= 0 {
		session.MaxPlayers = template.MaxPlayers
	}

	if !session.ExpectedDurationMinutes.Valid {
		session.ExpectedDurationMinutes = template.ExpectedDurationMinutes
	}

	if !session.Description.Valid {
		session.Description = template.Description
	}

	return nil
}
