package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/eskrenkovic/tql"
)

// expectedSchema is the shape the full chain produces - the managed
// tables and their exact column sets. Verification compares against
// this instead of intermediate revisions; consumers only ever depend
// on the final shape.
var expectedSchema = map[string][]string{
	"game_sessions": {
		"id",
		"guild_id",
		"channel_id",
		"organizer_id",
		"title",
		"scheduled_at",
		"max_players",
		"description",
		"signup_instructions",
		"expected_duration_minutes",
		"notify_role_ids",
		"where",
		"created_at",
		"updated_at",
	},
	"game_participants": {
		"id",
		"game_session_id",
		"user_id",
		"display_name",
		"pre_populated",
		"pre_filled_position",
		"joined_at",
	},
	"guild_configurations": {
		"guild_id",
		"bot_manager_role_ids",
		"timezone",
		"created_at",
		"updated_at",
	},
	"channel_configurations": {
		"channel_id",
		"guild_id",
		"scheduling_enabled",
		"created_at",
	},
	"notification_schedule": {
		"id",
		"game_session_id",
		"reminder_minutes",
		"sent_at",
		"created_at",
	},
	"game_templates": {
		"id",
		"guild_id",
		"name",
		"title",
		"max_players",
		"expected_duration_minutes",
		"description",
		"created_at",
	},
}

// VerifySchema introspects the database and compares every managed
// table against the expected column set. A missing table, a missing
// column, or an extra column in a managed table is a fatal mismatch.
func VerifySchema(ctx context.Context, db *sql.DB) error {
	var mismatches []string

	for _, table := range sortedTables() {
		actual, err := TableColumns(ctx, db, table)
		if err != nil {
			return err
		}

		if len(actual) == 0 {
			mismatches = append(mismatches, fmt.Sprintf("table %s: missing", table))
			continue
		}

		actualSet := make(map[string]bool, len(actual))
		for _, column := range actual {
			actualSet[column] = true
		}

		for _, column := range expectedSchema[table] {
			if !actualSet[column] {
				mismatches = append(mismatches, fmt.Sprintf("table %s: missing column %s", table, column))
			}
			delete(actualSet, column)
		}

		for column := range actualSet {
			mismatches = append(mismatches, fmt.Sprintf("table %s: unexpected column %s", table, column))
		}
	}

	if len(mismatches) > 0 {
		sort.Strings(mismatches)
		return fmt.Errorf("schema verification failed: %s", strings.Join(mismatches, "; "))
	}

	return nil
}

// TableColumns returns the column names of a public-schema table, or
// an empty slice when the table does not exist.
func TableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	const query = `
		SELECT
			column_name
		FROM
			information_schema.columns
		WHERE
			table_schema = 'public' AND table_name = $1
		ORDER BY
			column_name;`
	return tql.Query[string](ctx, db, query, table)
}

func sortedTables() []string {
	tables := make([]string, 0, len(expectedSchema))
	for table := range expectedSchema {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
