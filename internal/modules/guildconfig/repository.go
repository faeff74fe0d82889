package guildconfig

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type GuildConfigurationRepository struct {
	db *sqlx.DB
}

func NewGuildConfigurationRepository(db *sqlx.DB) *GuildConfigurationRepository {
	return &GuildConfigurationRepository{db}
}

func (r *GuildConfigurationRepository) LoadGuildConfiguration(ctx context.Context, guildID int64) (GuildConfiguration, error) {
	const query = `
		SELECT *
		FROM guild_configurations
		WHERE guild_id = $1;`

	var configuration GuildConfiguration
	return configuration, r.db.GetContext(ctx, &configuration, query, guildID)
}

func (r *GuildConfigurationRepository) SaveGuildConfiguration(ctx context.Context, configuration GuildConfiguration) error {
	const script = `
		INSERT INTO guild_configurations (guild_id, bot_manager_role_ids, timezone)
		VALUES (:guild_id, :bot_manager_role_ids, :timezone)
		ON CONFLICT (guild_id)
		DO
		UPDATE
		SET bot_manager_role_ids=:bot_manager_role_ids, timezone=:timezone, updated_at=now()
		WHERE guild_configurations.guild_id=:guild_id;`

	_, err := r.db.NamedExecContext(ctx, script, configuration)
	return err
}

// EnsureGuildConfiguration inserts a default row for a guild the bot
// just joined, leaving an existing row untouched.
func (r *GuildConfigurationRepository) EnsureGuildConfiguration(ctx context.Context, guildID int64) error {
	const script = `
		INSERT INTO guild_configurations (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id)
		DO NOTHING;`

	_, err := r.db.ExecContext(ctx, script, guildID)
	return err
}

func (r *GuildConfigurationRepository) SaveChannelConfiguration(ctx context.Context, configuration ChannelConfiguration) error {
	const script = `
		INSERT INTO channel_configurations (channel_id, guild_id, scheduling_enabled)
		VALUES (:channel_id, :guild_id, :scheduling_enabled)
		ON CONFLICT (channel_id)
		DO
		UPDATE
		SET guild_id=:guild_id, scheduling_enabled=:scheduling_enabled
		WHERE channel_configurations.channel_id=:channel_id;`

	_, err := r.db.NamedExecContext(ctx, script, configuration)
	return err
}
