package guildconfig

import (
	"time"

	"github.com/ajurkovic/game-scheduler/internal/modules/core"
)

type GuildConfiguration struct {
	GuildID           int64              `db:"guild_id" json:"guild_id"`
	BotManagerRoleIDs core.SnowflakeList `db:"bot_manager_role_ids" json:"bot_manager_role_ids"`
	Timezone          string             `db:"timezone" json:"timezone"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

type ChannelConfiguration struct {
	ChannelID         int64     `db:"channel_id" json:"channel_id"`
	GuildID           int64     `db:"guild_id" json:"guild_id"`
	SchedulingEnabled bool      `db:"scheduling_enabled" json:"scheduling_enabled"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
