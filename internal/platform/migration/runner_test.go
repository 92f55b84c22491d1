// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"bytes"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestConvertToPgx5DSN rewrites only the postgres schemes.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@h:5432/db?sslmode=disable": "pgx5://u:p@h:5432/db?sslmode=disable",
		"postgresql://u:p@h/db":                    "pgx5://u:p@h/db",
		"pgx5://u:p@h/db":                          "pgx5://u:p@h/db",
		"host=h user=u":                            "host=h user=u",
	}

	for input, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(input), input)
	}
}

/*
TestEmbeddedMigrations checks that every version ships both directions.
*/
func TestEmbeddedMigrations(t *testing.T) {
	up, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	down, err := fs.Glob(files, "sql/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, up)
	assert.Len(t, down, len(up))

	body, err := fs.ReadFile(files, "sql/000001_create_actor_table.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS actor")
}

/*
TestMigrateLogger_Verbose follows the level of the wrapped logger.
*/
func TestMigrateLogger_Verbose(t *testing.T) {
	var buffer bytes.Buffer

	quiet := newMigrateLogger(slog.New(slog.NewJSONHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelInfo})))
	assert.False(t, quiet.Verbose())

	loud := newMigrateLogger(slog.New(slog.NewJSONHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelDebug})))
	assert.True(t, loud.Verbose())

	loud.Printf("1/u create_actor_table (12.5ms)\n")
	assert.Contains(t, buffer.String(), `"msg":"1/u create_actor_table (12.5ms)"`)
}
