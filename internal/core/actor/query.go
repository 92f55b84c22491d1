package actor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/taibuivan/myapi/internal/platform/database/schema"
	"github.com/taibuivan/myapi/internal/platform/dberr"
)

// Both mappers share the same statements; only the execution differs.
var queryBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func returningColumns() string {
	return "RETURNING " + strings.Join(schema.Actor.Columns(), ", ")
}

func insertQuery(firstName, lastName string) (string, []any, error) {
	return queryBuilder.
		Insert(schema.Actor.Table).
		Columns(schema.Actor.FirstName, schema.Actor.LastName).
		Values(firstName, lastName).
		Suffix(returningColumns()).
		ToSql()
}

func selectAllQuery() (string, []any, error) {
	return queryBuilder.
		Select(schema.Actor.Columns()...).
		From(schema.Actor.Table).
		OrderBy(schema.Actor.ID).
		ToSql()
}

func selectOneQuery(id int) (string, []any, error) {
	return queryBuilder.
		Select(schema.Actor.Columns()...).
		From(schema.Actor.Table).
		Where(squirrel.Eq{schema.Actor.ID: id}).
		ToSql()
}

// updateQuery refreshes last_update on every write. changes must not be empty.
func updateQuery(id int, changes Changes) (string, []any, error) {
	values := map[string]any{}
	if changes.FirstName != nil {
		values[schema.Actor.FirstName] = *changes.FirstName
	}
	if changes.LastName != nil {
		values[schema.Actor.LastName] = *changes.LastName
	}

	return queryBuilder.
		Update(schema.Actor.Table).
		SetMap(values).
		Set(schema.Actor.LastUpdate, squirrel.Expr("now()")).
		Where(squirrel.Eq{schema.Actor.ID: id}).
		Suffix(returningColumns()).
		ToSql()
}

func deleteQuery(id int) (string, []any, error) {
	return queryBuilder.
		Delete(schema.Actor.Table).
		Where(squirrel.Eq{schema.Actor.ID: id}).
		ToSql()
}

// storableID reports whether id fits the int4 actor_id column. Ids outside it were
// never assigned, so callers answer NotFound without a round trip.
func storableID(id int) bool {
	return int64(id) >= math.MinInt32 && int64(id) <= math.MaxInt32
}

// buildErr wraps a statement construction failure.
func buildErr(err error, action string) error {
	return fmt.Errorf("actor: build %s: %w", action, err)
}

// notFound turns the generic missing-row error into the domain error for id.
func notFound(err error, id int) error {
	if errors.Is(err, dberr.ErrNotFound) {
		return &NotFoundError{ID: id}
	}
	return err
}
