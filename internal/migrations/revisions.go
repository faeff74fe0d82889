package migrations

// All returns the full revision history of the scheduler schema, root
// first. Revisions are append-only - the chain is the only supported
// way of arriving at the current schema shape.
func All() []Migration {
	return []Migration{
		{
			Revision: "0001_initial_schema",
			Parent:   "",
			Up: []string{
				`CREATE TABLE game_sessions (
					id           varchar(36) PRIMARY KEY,
					guild_id     bigint NOT NULL,
					channel_id   bigint NOT NULL,
					organizer_id bigint NOT NULL,
					title        text NOT NULL,
					scheduled_at timestamptz NOT NULL,
					max_players  integer NOT NULL,
					rules        text,
					created_at   timestamptz NOT NULL DEFAULT now(),
					updated_at   timestamptz NOT NULL DEFAULT now()
				);`,
				`CREATE INDEX idx_game_sessions_guild_id ON game_sessions (guild_id);`,
				`CREATE TABLE game_participants (
					id              varchar(36) PRIMARY KEY,
					game_session_id varchar(36) NOT NULL REFERENCES game_sessions (id) ON DELETE CASCADE,
					user_id         bigint NOT NULL,
					display_name    text NOT NULL,
					status          varchar(16) NOT NULL DEFAULT 'confirmed',
					pre_populated   boolean NOT NULL DEFAULT false,
					joined_at       timestamptz NOT NULL DEFAULT now()
				);`,
				`CREATE INDEX idx_game_participants_session ON game_participants (game_session_id);`,
				`CREATE TABLE guild_configurations (
					guild_id             bigint PRIMARY KEY,
					bot_manager_role_ids jsonb NOT NULL DEFAULT '[]'::jsonb,
					default_rules        text,
					timezone             text NOT NULL DEFAULT 'UTC',
					created_at           timestamptz NOT NULL DEFAULT now(),
					updated_at           timestamptz NOT NULL DEFAULT now()
				);`,
				`CREATE TABLE channel_configurations (
					channel_id         bigint PRIMARY KEY,
					guild_id           bigint NOT NULL,
					scheduling_enabled boolean NOT NULL DEFAULT true,
					default_rules      text,
					created_at         timestamptz NOT NULL DEFAULT now()
				);`,
				`CREATE TABLE notification_schedule (
					id               uuid PRIMARY KEY,
					game_session_id  varchar(36) NOT NULL REFERENCES game_sessions (id) ON DELETE CASCADE,
					reminder_minutes integer NOT NULL,
					sent_at          timestamptz,
					created_at       timestamptz NOT NULL DEFAULT now()
				);`,
				`CREATE TABLE game_templates (
					id                        varchar(36) PRIMARY KEY,
					guild_id                  bigint NOT NULL,
					name                      text NOT NULL,
					title                     text NOT NULL,
					max_players               integer NOT NULL,
					expected_duration_minutes integer,
					description               text,
					created_at                timestamptz NOT NULL DEFAULT now(),
					CONSTRAINT game_templates_guild_name_key UNIQUE (guild_id, name)
				);`,
			},
			Down: []string{
				`DROP TABLE game_templates;`,
				`DROP TABLE notification_schedule;`,
				`DROP TABLE channel_configurations;`,
				`DROP TABLE guild_configurations;`,
				`DROP TABLE game_participants;`,
				`DROP TABLE game_sessions;`,
			},
		},
		{
			Revision: "0002_session_details",
			Parent:   "0001_initial_schema",
			Up: []string{
				`ALTER TABLE game_sessions ADD COLUMN description text;`,
				`ALTER TABLE game_sessions ADD COLUMN signup_instructions text;`,
			},
			Down: []string{
				`ALTER TABLE game_sessions DROP COLUMN signup_instructions;`,
				`ALTER TABLE game_sessions DROP COLUMN description;`,
			},
		},
		{
			Revision: "0003_expected_duration",
			Parent:   "0002_session_details",
			Up: []string{
				`ALTER TABLE game_sessions ADD COLUMN expected_duration_minutes integer;`,
			},
			Down: []string{
				`ALTER TABLE game_sessions DROP COLUMN expected_duration_minutes;`,
			},
		},
		{
			Revision: "0004_notify_role_ids",
			Parent:   "0003_expected_duration",
			Up: []string{
				`ALTER TABLE game_sessions ADD COLUMN notify_role_ids jsonb NOT NULL DEFAULT '[]'::jsonb;`,
			},
			Down: []string{
				`ALTER TABLE game_sessions DROP COLUMN notify_role_ids;`,
			},
		},
		{
			Revision: "0005_min_players",
			Parent:   "0004_notify_role_ids",
			Up: []string{
				`ALTER TABLE game_sessions ADD COLUMN min_players integer;`,
			},
			Down: []string{
				`ALTER TABLE game_sessions DROP COLUMN min_players;`,
			},
		},
		{
			Revision: "0006_participant_unique",
			Parent:   "0005_min_players",
			Up: []string{
				// Keep the earliest join per (session, user) before adding
				// the constraint. Ties on joined_at fall back to id.
				`DELETE FROM game_participants p
				USING game_participants q
				WHERE p.game_session_id = q.game_session_id
					AND p.user_id = q.user_id
					AND (p.joined_at > q.joined_at
						OR (p.joined_at = q.joined_at AND p.id > q.id));`,
				`ALTER TABLE game_participants
					ADD CONSTRAINT game_participants_session_user_key UNIQUE (game_session_id, user_id);`,
			},
			Down: []string{
				`ALTER TABLE game_participants DROP CONSTRAINT game_participants_session_user_key;`,
			},
		},
		{
			Revision: "0007_pre_filled_position",
			Parent:   "0006_participant_unique",
			Up: []string{
				`ALTER TABLE game_participants ADD COLUMN pre_filled_position integer;`,
				// Positions 1..k per session for organizer-inserted rows,
				// in join order. Equal timestamps order by id.
				`UPDATE game_participants p
				SET pre_filled_position = ranked.position
				FROM (
					SELECT
						id,
						ROW_NUMBER() OVER (
							PARTITION BY game_session_id
							ORDER BY joined_at, id
						) AS position
					FROM game_participants
					WHERE pre_populated
				) ranked
				WHERE p.id = ranked.id;`,
			},
			Down: []string{
				`ALTER TABLE game_participants DROP COLUMN pre_filled_position;`,
			},
		},
		{
			Revision: "0008_drop_participant_status",
			Parent:   "0007_pre_filled_position",
			Up: []string{
				`ALTER TABLE game_participants DROP COLUMN status;`,
			},
			Down: []string{
				`ALTER TABLE game_participants ADD COLUMN status varchar(16) NOT NULL DEFAULT 'confirmed';`,
			},
		},
		{
			Revision: "0009_drop_rules",
			Parent:   "0008_drop_participant_status",
			Up: []string{
				`ALTER TABLE game_sessions DROP COLUMN rules;`,
				`ALTER TABLE guild_configurations DROP COLUMN default_rules;`,
				`ALTER TABLE channel_configurations DROP COLUMN default_rules;`,
			},
			Down: []string{
				`ALTER TABLE channel_configurations ADD COLUMN default_rules text;`,
				`ALTER TABLE guild_configurations ADD COLUMN default_rules text;`,
				`ALTER TABLE game_sessions ADD COLUMN rules text;`,
			},
		},
		{
			Revision: "0010_notification_id_text",
			Parent:   "0009_drop_rules",
			Up: []string{
				`ALTER TABLE notification_schedule
					ALTER COLUMN id TYPE varchar(36) USING id::text;`,
			},
			Down: []string{
				`ALTER TABLE notification_schedule
					ALTER COLUMN id TYPE uuid USING id::uuid;`,
			},
		},
		{
			Revision: "0011_reminder_nullable",
			Parent:   "0010_notification_id_text",
			Up: []string{
				`ALTER TABLE notification_schedule ALTER COLUMN reminder_minutes DROP NOT NULL;`,
			},
			Down: []string{
				`UPDATE notification_schedule SET reminder_minutes = 30 WHERE reminder_minutes IS NULL;`,
				`ALTER TABLE notification_schedule ALTER COLUMN reminder_minutes SET NOT NULL;`,
			},
		},
		{
			Revision: "0012_rls_policies",
			Parent:   "0011_reminder_nullable",
			Up: []string{
				// Policies are created before enforcement is turned on so
				// existing traffic keeps working while they are authored.
				// An unset guild context bypasses the predicate - background
				// processes run unscoped.
				`CREATE POLICY guild_isolation ON game_sessions
				USING (
					NULLIF(current_setting('app.current_guild_id', true), '') IS NULL
					OR guild_id = NULLIF(current_setting('app.current_guild_id', true), '')::bigint
				);`,
				`CREATE POLICY guild_isolation ON game_participants
				USING (
					NULLIF(current_setting('app.current_guild_id', true), '') IS NULL
					OR game_session_id IN (
						SELECT id FROM game_sessions
						WHERE guild_id = NULLIF(current_setting('app.current_guild_id', true), '')::bigint
					)
				);`,
				`CREATE POLICY guild_isolation ON game_templates
				USING (
					NULLIF(current_setting('app.current_guild_id', true), '') IS NULL
					OR guild_id = NULLIF(current_setting('app.current_guild_id', true), '')::bigint
				);`,
			},
			Down: []string{
				`DROP POLICY guild_isolation ON game_templates;`,
				`DROP POLICY guild_isolation ON game_participants;`,
				`DROP POLICY guild_isolation ON game_sessions;`,
			},
		},
		{
			Revision: "0013_enable_rls",
			Parent:   "0012_rls_policies",
			Up: []string{
				`ALTER TABLE game_sessions ENABLE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_sessions FORCE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_participants ENABLE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_participants FORCE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_templates ENABLE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_templates FORCE ROW LEVEL SECURITY;`,
			},
			Down: []string{
				`ALTER TABLE game_templates NO FORCE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_templates DISABLE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_participants NO FORCE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_participants DISABLE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_sessions NO FORCE ROW LEVEL SECURITY;`,
				`ALTER TABLE game_sessions DISABLE ROW LEVEL SECURITY;`,
			},
		},
		{
			Revision: "0014_drop_min_players",
			Parent:   "0013_enable_rls",
			Up: []string{
				`ALTER TABLE game_sessions DROP COLUMN min_players;`,
			},
			Down: []string{
				`ALTER TABLE game_sessions ADD COLUMN min_players integer;`,
			},
		},
		{
			Revision: "0015_session_where",
			Parent:   "0014_drop_min_players",
			Up: []string{
				`ALTER TABLE game_sessions ADD COLUMN "where" text;`,
			},
			Down: []string{
				`ALTER TABLE game_sessions DROP COLUMN "where";`,
			},
		},
	}
}
