// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/myapi/internal/platform/dberr"
)

// Beginner opens transactions. *pgxpool.Pool satisfies it, as do pgxmock pools.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Sessions hands out one transaction-scoped unit of work per call.
//
// It is constructed once at startup and shared; each call to [Sessions.Do] acquires
// its own connection, so a session is never visible to two goroutines.
type Sessions struct {
	db     Beginner
	logger *slog.Logger
}

// NewSessions wraps a pool (or any [Beginner]) into a session factory.
func NewSessions(db Beginner, logger *slog.Logger) *Sessions {
	return &Sessions{db: db, logger: logger}
}

// Do runs fn inside a transaction.
//
// The transaction commits when fn returns nil and rolls back otherwise, including
// when fn panics or ctx is cancelled. The rollback runs on a context detached from
// cancellation so the connection is always returned to the pool, exactly once.
func (sessions *Sessions) Do(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := sessions.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_session")
	}
	sessions.logger.DebugContext(ctx, "session_opened", slog.String("driver", "pgx"))

	committed := false
	defer func() {
		if !committed {
			rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				sessions.logger.WarnContext(ctx, "session_rollback_failed", slog.Any("error", rollbackErr))
			}
		}
		sessions.logger.DebugContext(ctx, "session_closed",
			slog.String("driver", "pgx"),
			slog.Bool("committed", committed),
		)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_session")
	}
	committed = true

	return nil
}
