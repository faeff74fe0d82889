package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ajurkovic/game-scheduler/internal/migrations"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T) *migrations.Runner {
	t.Helper()

	chain, err := migrations.BuildChain(migrations.All())
	require.NoError(t, err)

	return migrations.NewRunner(db, chain)
}

func upgrade(t *testing.T) {
	t.Helper()
	require.NoError(t, newRunner(t).Upgrade(context.Background()))
}

func insertSession(t *testing.T, guildID int64) string {
	t.Helper()

	sessionID := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO game_sessions (id, guild_id, channel_id, organizer_id, title, scheduled_at, max_players)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		sessionID, guildID, guildID+1, guildID+2, "test session", time.Now().Add(time.Hour), 5,
	)
	require.NoError(t, err)

	return sessionID
}

func Test_Upgrade_Applies_Full_Chain_And_Schema_Verifies(t *testing.T) {
	// Arrange
	runner := newRunner(t)

	// Act
	err := runner.Upgrade(context.Background())

	// Assert
	require.NoError(t, err)
	require.NoError(t, migrations.VerifySchema(context.Background(), db))
}

func Test_Upgrade_Is_Idempotent(t *testing.T) {
	// Arrange
	upgrade(t)

	// Act
	err := newRunner(t).Upgrade(context.Background())

	// Assert
	require.NoError(t, err)
	require.NoError(t, migrations.VerifySchema(context.Background(), db))
}

func Test_Downgrade_Then_Upgrade_Restores_Column_Sets(t *testing.T) {
	// Arrange
	upgrade(t)

	ctx := context.Background()
	tables := []string{
		"game_sessions",
		"game_participants",
		"guild_configurations",
		"channel_configurations",
		"notification_schedule",
		"game_templates",
	}

	before := map[string][]string{}
	for _, table := range tables {
		columns, err := migrations.TableColumns(ctx, db, table)
		require.NoError(t, err)
		before[table] = columns
	}

	chain, err := migrations.BuildChain(migrations.All())
	require.NoError(t, err)

	// Act + Assert - walk every revision depth so each revision's down
	// and up run at least once.
	for n := 1; n <= chain.Len(); n++ {
		require.NoError(t, newRunner(t).Downgrade(ctx, n))
		require.NoError(t, newRunner(t).Upgrade(ctx))

		for _, table := range tables {
			columns, err := migrations.TableColumns(ctx, db, table)
			require.NoError(t, err)
			require.Equal(t, before[table], columns, "column set changed for %s after depth %d", table, n)
		}
	}

	require.NoError(t, migrations.VerifySchema(ctx, db))
}

func Test_Participant_Unique_Migration_Keeps_Earliest_Join(t *testing.T) {
	// Arrange
	upgrade(t)

	ctx := context.Background()

	// Back to the revision before the unique constraint exists.
	require.NoError(t, newRunner(t).Downgrade(ctx, 10))

	sessionID := insertSession(t, 100)
	userID := int64(42)

	earlier := time.Now().Add(-2 * time.Hour)
	later := time.Now().Add(-1 * time.Hour)

	_, err := db.Exec(
		`INSERT INTO game_participants (id, game_session_id, user_id, display_name, joined_at)
		VALUES ($1, $2, $3, $4, $5), ($6, $2, $3, $7, $8);`,
		uuid.New().String(), sessionID, userID, "early join", earlier,
		uuid.New().String(), "late join", later,
	)
	require.NoError(t, err)

	// Act
	require.NoError(t, newRunner(t).Upgrade(ctx))

	// Assert
	rows, err := db.Query(
		`SELECT display_name FROM game_participants WHERE game_session_id = $1 AND user_id = $2;`,
		sessionID, userID,
	)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())

	require.Equal(t, []string{"early join"}, names)

	_, err = db.Exec(`DELETE FROM game_sessions WHERE id = $1;`, sessionID)
	require.NoError(t, err)
}

func Test_Pre_Filled_Position_Backfill_Follows_Join_Order(t *testing.T) {
	// Arrange
	upgrade(t)

	ctx := context.Background()

	// Back to the revision before pre_filled_position exists.
	require.NoError(t, newRunner(t).Downgrade(ctx, 9))

	sessionID := insertSession(t, 200)

	base := time.Now().Add(-3 * time.Hour)

	type seed struct {
		userID       int64
		displayName  string
		prePopulated bool
		joinedAt     time.Time
	}

	seeds := []seed{
		{1, "second pre-filled", true, base.Add(time.Hour)},
		{2, "first pre-filled", true, base},
		{3, "organic join", false, base.Add(2 * time.Hour)},
	}

	for _, s := range seeds {
		_, err := db.Exec(
			`INSERT INTO game_participants (id, game_session_id, user_id, display_name, pre_populated, joined_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			uuid.New().String(), sessionID, s.userID, s.displayName, s.prePopulated, s.joinedAt,
		)
		require.NoError(t, err)
	}

	// Act
	require.NoError(t, newRunner(t).Upgrade(ctx))

	// Assert
	positions := map[string]*int64{}

	rows, err := db.Query(
		`SELECT display_name, pre_filled_position FROM game_participants WHERE game_session_id = $1;`,
		sessionID,
	)
	require.NoError(t, err)
	defer rows.Close()

	for rows.Next() {
		var name string
		var position *int64
		require.NoError(t, rows.Scan(&name, &position))
		positions[name] = position
	}
	require.NoError(t, rows.Err())

	require.NotNil(t, positions["first pre-filled"])
	require.Equal(t, int64(1), *positions["first pre-filled"])

	require.NotNil(t, positions["second pre-filled"])
	require.Equal(t, int64(2), *positions["second pre-filled"])

	require.Nil(t, positions["organic join"])

	_, err = db.Exec(`DELETE FROM game_sessions WHERE id = $1;`, sessionID)
	require.NoError(t, err)
}

func Test_Guild_Context_Scopes_Session_Queries(t *testing.T) {
	// Arrange
	upgrade(t)

	guildA := int64(301)
	guildB := int64(302)

	sessionA := insertSession(t, guildA)
	sessionB := insertSession(t, guildB)

	// Act
	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`SELECT set_config('app.current_guild_id', $1, true);`, fmt.Sprint(guildA))
	require.NoError(t, err)

	rows, err := tx.Query(`SELECT id FROM game_sessions WHERE id IN ($1, $2);`, sessionA, sessionB)
	require.NoError(t, err)
	defer rows.Close()

	var visible []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		visible = append(visible, id)
	}
	require.NoError(t, rows.Err())

	// Assert
	require.Equal(t, []string{sessionA}, visible)

	require.NoError(t, tx.Rollback())

	_, err = db.Exec(`DELETE FROM game_sessions WHERE id IN ($1, $2);`, sessionA, sessionB)
	require.NoError(t, err)
}

func Test_Unscoped_Connection_Sees_All_Guilds(t *testing.T) {
	// Arrange
	upgrade(t)

	sessionA := insertSession(t, 401)
	sessionB := insertSession(t, 402)

	// Act
	var count int
	err := db.QueryRow(
		`SELECT count(*) FROM game_sessions WHERE id IN ($1, $2);`,
		sessionA, sessionB,
	).Scan(&count)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = db.Exec(`DELETE FROM game_sessions WHERE id IN ($1, $2);`, sessionA, sessionB)
	require.NoError(t, err)
}

func Test_Application_Role_Cannot_Bypass_Row_Level_Security(t *testing.T) {
	// Superusers and BYPASSRLS roles skip row level security entirely,
	// which would make guild isolation a silent no-op.

	// Act
	var privileged bool
	err := db.QueryRow(
		`SELECT rolsuper OR rolbypassrls FROM pg_roles WHERE rolname = current_user;`,
	).Scan(&privileged)

	// Assert
	require.NoError(t, err)
	require.False(t, privileged)
}

func Test_Notification_Schedule_Accepts_Text_IDs_And_Null_Reminder(t *testing.T) {
	// Arrange
	upgrade(t)

	sessionID := insertSession(t, 500)

	// Act
	_, err := db.Exec(
		`INSERT INTO notification_schedule (id, game_session_id, reminder_minutes)
		VALUES ($1, $2, NULL);`,
		"not-a-uuid-but-still-a-valid-id", sessionID,
	)

	// Assert
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM game_sessions WHERE id = $1;`, sessionID)
	require.NoError(t, err)
}
