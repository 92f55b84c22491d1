// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/myapi/internal/platform/dberr"
)

// TxBeginner opens transactions. *sqlx.DB satisfies it.
type TxBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Sessions hands out one transaction-scoped unit of work per call.
type Sessions struct {
	db     TxBeginner
	logger *slog.Logger
}

// NewSessions wraps a database handle into a session factory.
func NewSessions(db TxBeginner, logger *slog.Logger) *Sessions {
	return &Sessions{db: db, logger: logger}
}

// Do runs fn inside a transaction that commits when fn returns nil and rolls
// back on error or panic.
func (sessions *Sessions) Do(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := sessions.db.BeginTxx(ctx, nil)
	if err != nil {
		return dberr.Wrap(err, "begin_session")
	}
	sessions.logger.DebugContext(ctx, "session_opened", slog.String("driver", DriverName))

	committed := false
	defer func() {
		if !committed {
			// database/sql may already have rolled back on ctx cancellation.
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				sessions.logger.WarnContext(ctx, "session_rollback_failed", slog.Any("error", rollbackErr))
			}
		}
		sessions.logger.DebugContext(ctx, "session_closed",
			slog.String("driver", DriverName),
			slog.Bool("committed", committed),
		)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dberr.Wrap(err, "commit_session")
	}
	committed = true

	return nil
}
