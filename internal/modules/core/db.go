package core

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

type TransactionOption func(*sql.TxOptions)

func WithIsolationLevel(isolationLevel sql.IsolationLevel) TransactionOption {
	return func(opts *sql.TxOptions) {
		opts.Isolation = isolationLevel
	}
}

func Tx(
	ctx context.Context,
	db *sql.DB,
	transaction func(context.Context, *sql.Tx) error,
	opts ...TransactionOption,
) (err error) {
	options := sql.TxOptions{}

	for _, opt := range opts {
		opt(&options)
	}

	tx, err := db.BeginTx(ctx, &options)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Wrapf(err, "%v", r)
			} else {
				err = fmt.Errorf("transaction panicked with: %v", r)
			}
		}
	}()

	err = transaction(ctx, tx)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%s: %w", rollbackErr.Error(), err)
		}

		return err
	}

	err = tx.Commit()
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("%s: %w", rollbackErr.Error(), err)
		}

		return err
	}

	return err
}

// GuildTx runs the transaction with app.current_guild_id set for its
// duration. Row-level-security policies evaluate the setting per query,
// which scopes every statement in fn to the given guild. set_config with
// is_local = true resets the value on commit or rollback.
func GuildTx(
	ctx context.Context,
	db *sql.DB,
	guildID int64,
	fn func(context.Context, *sql.Tx) error,
	opts ...TransactionOption,
) error {
	scoped := func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `SELECT set_config('app.current_guild_id', $1, true);`
		if _, err := tx.ExecContext(ctx, stmt, strconv.FormatInt(guildID, 10)); err != nil {
			return errors.Wrap(err, "failed to set guild context")
		}

		return fn(ctx, tx)
	}

	return Tx(ctx, db, scoped, opts...)
}
