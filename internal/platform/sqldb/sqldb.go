// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqldb provides the blocking database/sql handle (lib/pq driver, sqlx
// helpers) and the unit-of-work sessions built on it.
//
// It mirrors package postgres for callers that run on the request goroutine and
// hold a pooled connection for the whole call.
package sqldb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"

	"github.com/taibuivan/myapi/internal/platform/config"
)

// DriverName is the database/sql driver registered by lib/pq.
const DriverName = "postgres"

const (
	maxIdleConns    = 2
	maxConnLifetime = 60 * time.Minute
	maxConnIdleTime = 10 * time.Minute
	pingTimeout     = 2 * time.Second
)

// Open creates the database/sql handle and verifies connectivity.
func Open(ctx context.Context, database config.Database, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, database.URL())
	if err != nil {
		return nil, fmt.Errorf("sqldb: invalid DSN: %w", err)
	}

	if database.MaxConns > 0 {
		db.SetMaxOpenConns(database.MaxConns)
	}
	db.SetMaxIdleConns(min(maxIdleConns, max(database.MaxConns, 1)))
	db.SetConnMaxLifetime(maxConnLifetime)
	db.SetConnMaxIdleTime(maxConnIdleTime)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sql database connected",
		slog.String("host", database.Host),
		slog.String("database", database.Name),
		slog.Int("max_conns", database.MaxConns),
	)

	return db, nil
}

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Ping verifies that the database/sql handle can reach the server.
func Ping(ctx context.Context, db Pinger) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqldb: ping failed: %w", err)
	}

	return nil
}
