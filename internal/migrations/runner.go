package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eskrenkovic/tql"
	"github.com/pkg/errors"
)

type appliedMigration struct {
	Revision  string    `db:"revision"`
	Parent    string    `db:"parent"`
	AppliedAt time.Time `db:"applied_at"`
}

// Runner applies and reverts a revision chain against a database. Each
// step runs in its own transaction together with the bookkeeping row in
// schema_migrations - a step either fully applies or rolls back.
type Runner struct {
	db    *sql.DB
	chain Chain
}

func NewRunner(db *sql.DB, chain Chain) *Runner {
	return &Runner{db: db, chain: chain}
}

// Upgrade applies every revision not yet recorded in schema_migrations,
// in chain order. The already-applied revisions are required to be a
// prefix of the chain - anything else means the database was migrated
// by a different history and is unsafe to touch.
func (r *Runner) Upgrade(ctx context.Context) error {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := r.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	pending, err := r.pending(applied)
	if err != nil {
		return err
	}

	for _, migration := range pending {
		if err := r.applyStep(ctx, migration); err != nil {
			return errors.Wrapf(err, "failed to apply revision %s", migration.Revision)
		}
	}

	return nil
}

// Downgrade reverts the last n applied revisions, newest first.
func (r *Runner) Downgrade(ctx context.Context, n int) error {
	if err := r.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := r.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	if n > len(applied) {
		return fmt.Errorf("cannot revert %d revisions - only %d applied", n, len(applied))
	}

	byRevision := make(map[string]Migration, r.chain.Len())
	for _, m := range r.chain.Migrations() {
		byRevision[m.Revision] = m
	}

	for i := 0; i < n; i++ {
		record := applied[len(applied)-1-i]

		migration, found := byRevision[record.Revision]
		if !found {
			return fmt.Errorf("applied revision %s not present in the chain", record.Revision)
		}

		if err := r.revertStep(ctx, migration); err != nil {
			return errors.Wrapf(err, "failed to revert revision %s", migration.Revision)
		}
	}

	return nil
}

func (r *Runner) pending(applied []appliedMigration) ([]Migration, error) {
	chain := r.chain.Migrations()

	if len(applied) > len(chain) {
		return nil, fmt.Errorf("database has %d applied revisions - chain only has %d", len(applied), len(chain))
	}

	for i, record := range applied {
		if chain[i].Revision != record.Revision {
			return nil, fmt.Errorf(
				"applied revision %s diverges from chain revision %s at position %d",
				record.Revision, chain[i].Revision, i,
			)
		}
	}

	return chain[len(applied):], nil
}

func (r *Runner) applyStep(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}

	for _, script := range migration.Up {
		if _, err := tx.ExecContext(ctx, script); err != nil {
			return rollback(tx, err)
		}
	}

	const stmt = `
		INSERT INTO
			schema_migrations (revision, parent)
		VALUES
			($1, $2);`
	if _, err := tql.Exec(ctx, tx, stmt, migration.Revision, migration.Parent); err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		return rollback(tx, err)
	}

	return nil
}

func (r *Runner) revertStep(ctx context.Context, migration Migration) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}

	for _, script := range migration.Down {
		if _, err := tx.ExecContext(ctx, script); err != nil {
			return rollback(tx, err)
		}
	}

	const stmt = `
		DELETE FROM
			schema_migrations
		WHERE
			revision = $1;`
	if _, err := tql.Exec(ctx, tx, stmt, migration.Revision); err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		return rollback(tx, err)
	}

	return nil
}

func (r *Runner) appliedMigrations(ctx context.Context) ([]appliedMigration, error) {
	const query = `
		SELECT
			revision, parent, applied_at
		FROM
			schema_migrations
		ORDER BY
			applied_at, revision;`
	return tql.Query[appliedMigration](ctx, r.db, query)
}

func (r *Runner) ensureMigrationsTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			revision   text PRIMARY KEY,
			parent     text NOT NULL,
			applied_at timestamptz NOT NULL DEFAULT now()
		);`

	_, err := r.db.ExecContext(ctx, stmt)
	return err
}

func rollback(tx *sql.Tx, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		return fmt.Errorf("failed to roll back transaction: %s: %w", rollbackErr.Error(), err)
	}

	return err
}
