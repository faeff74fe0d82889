package template

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"
)

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db}
}

func (r *TemplateRepository) SaveTemplate(ctx context.Context, template GameTemplate) error {
	return r.withGuild(ctx, template.GuildID, func(tx *sqlx.Tx) error {
		const script = `
			INSERT INTO game_templates (id, guild_id, name, title, max_players, expected_duration_minutes, description)
			VALUES (:id, :guild_id, :name, :title, :max_players, :expected_duration_minutes, :description);`

		_, err := tx.NamedExecContext(ctx, script, template)
		return err
	})
}

func (r *TemplateRepository) ListTemplates(ctx context.Context, guildID int64) ([]GameTemplate, error) {
	templates := []GameTemplate{}

	err := r.withGuild(ctx, guildID, func(tx *sqlx.Tx) error {
		const query = `
			SELECT *
			FROM game_templates
			WHERE guild_id = $1
			ORDER BY name;`

		return tx.SelectContext(ctx, &templates, query, guildID)
	})

	return templates, err
}

func (r *TemplateRepository) DeleteTemplate(ctx context.Context, guildID int64, id string) (bool, error) {
	var deleted bool

	err := r.withGuild(ctx, guildID, func(tx *sqlx.Tx) error {
		const script = `
			DELETE FROM game_templates
			WHERE id = $1;`

		result, err := tx.ExecContext(ctx, script, id)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}

		deleted = affected > 0
		return nil
	})

	return deleted, err
}

// withGuild runs fn in a transaction scoped to the guild's rows by the
// row-level-security context.
func (r *TemplateRepository) withGuild(ctx context.Context, guildID int64, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	const stmt = `SELECT set_config('app.current_guild_id', $1, true);`
	if _, err := tx.ExecContext(ctx, stmt, strconv.FormatInt(guildID, 10)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
