package template

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// GameTemplate captures the recurring shape of a guild's games so
// organizers do not retype it for every session. Template names are
// unique per guild.
type GameTemplate struct {
	ID                      string      `db:"id" json:"id"`
	GuildID                 int64       `db:"guild_id" json:"guild_id"`
	Name                    string      `db:"name" json:"name"`
	Title                   string      `db:"title" json:"title"`
	MaxPlayers              int         `db:"max_players" json:"max_players"`
	ExpectedDurationMinutes null.Int    `db:"expected_duration_minutes" json:"expected_duration_minutes"`
	Description             null.String `db:"description" json:"description"`
	CreatedAt               time.Time   `db:"created_at" json:"created_at"`
}
