package domain

import (
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"

	"github.com/volatiletech/null/v8"
)

type Session struct {
	ID          string    `db:"id" json:"id"`
	GuildID     int64     `db:"guild_id" json:"guild_id"`
	ChannelID   int64     `db:"channel_id" json:"channel_id"`
	OrganizerID int64     `db:"organizer_id" json:"organizer_id"`
	Title       string    `db:"title" json:"title"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	MaxPlayers  int       `db:"max_players" json:"max_players"`

	Description             null.String `db:"description" json:"description"`
	SignupInstructions      null.String `db:"signup_instructions" json:"signup_instructions"`
	ExpectedDurationMinutes null.Int    `db:"expected_duration_minutes" json:"expected_duration_minutes"`

	NotifyRoleIDs core.SnowflakeList `db:"notify_role_ids" json:"notify_role_ids"`

	// Free-form location. The column is the quoted keyword "where".
	Where null.String `db:"where" json:"where"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Participant struct {
	ID            string `db:"id" json:"id"`
	GameSessionID string `db:"game_session_id" json:"game_session_id"`
	UserID        int64  `db:"user_id" json:"user_id"`
	DisplayName   string `db:"display_name" json:"display_name"`

	// Set by an organizer inserting the row ahead of actual sign-up.
	PrePopulated      bool     `db:"pre_populated" json:"pre_populated"`
	PreFilledPosition null.Int `db:"pre_filled_position" json:"pre_filled_position"`

	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
