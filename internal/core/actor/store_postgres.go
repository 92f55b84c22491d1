package actor

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/myapi/internal/platform/dberr"
	"github.com/taibuivan/myapi/internal/platform/postgres"
)

// PostgresMapper implements [Mapper] on the pgx pool. Every step takes the caller's
// context, so a cancelled request aborts the in-flight query.
type PostgresMapper struct {
	sessions *postgres.Sessions
}

// NewPostgresMapper constructs a pgx backed actor mapper.
func NewPostgresMapper(sessions *postgres.Sessions) *PostgresMapper {
	return &PostgresMapper{sessions: sessions}
}

// # Actor Retrieval

func (mapper *PostgresMapper) ReadActors(ctx context.Context) ([]Actor, error) {
	query, args, err := selectAllQuery()
	if err != nil {
		return nil, buildErr(err, "read_actors")
	}

	var actors []Actor
	err = mapper.sessions.Do(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return dberr.Wrap(err, "read_actors")
		}
		actors, err = pgx.CollectRows(rows, pgx.RowToStructByName[Actor])
		return dberr.Wrap(err, "scan_actors")
	})
	if err != nil {
		return nil, err
	}

	return actors, nil
}

func (mapper *PostgresMapper) ReadActor(ctx context.Context, id int) (Actor, error) {
	if !storableID(id) {
		return Actor{}, &NotFoundError{ID: id}
	}
	query, args, err := selectOneQuery(id)
	if err != nil {
		return Actor{}, buildErr(err, "read_actor")
	}
	return mapper.one(ctx, id, "read_actor", query, args)
}

// # Actor Mutation

func (mapper *PostgresMapper) CreateActor(ctx context.Context, firstName, lastName string) (Actor, error) {
	query, args, err := insertQuery(firstName, lastName)
	if err != nil {
		return Actor{}, buildErr(err, "create_actor")
	}
	return mapper.one(ctx, 0, "create_actor", query, args)
}

func (mapper *PostgresMapper) UpdateActorFirstName(ctx context.Context, id int, firstName string) (Actor, error) {
	return mapper.UpdateActor(ctx, id, Changes{FirstName: &firstName})
}

func (mapper *PostgresMapper) UpdateActorLastName(ctx context.Context, id int, lastName string) (Actor, error) {
	return mapper.UpdateActor(ctx, id, Changes{LastName: &lastName})
}

/*
UpdateActor applies every non-nil field of changes in a single UPDATE ... RETURNING.

An empty change set reads the current record instead.
*/
func (mapper *PostgresMapper) UpdateActor(ctx context.Context, id int, changes Changes) (Actor, error) {
	if !storableID(id) {
		return Actor{}, &NotFoundError{ID: id}
	}
	if changes.IsEmpty() {
		return mapper.ReadActor(ctx, id)
	}

	query, args, err := updateQuery(id, changes)
	if err != nil {
		return Actor{}, buildErr(err, "update_actor")
	}
	return mapper.one(ctx, id, "update_actor", query, args)
}

func (mapper *PostgresMapper) DeleteActor(ctx context.Context, id int) error {
	if !storableID(id) {
		return &NotFoundError{ID: id}
	}
	query, args, err := deleteQuery(id)
	if err != nil {
		return buildErr(err, "delete_actor")
	}

	err = mapper.sessions.Do(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return dberr.Wrap(err, "delete_actor")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	return notFound(err, id)
}

// one runs a statement expected to yield exactly one actor row.
func (mapper *PostgresMapper) one(ctx context.Context, id int, action, query string, args []any) (Actor, error) {
	var actor Actor
	err := mapper.sessions.Do(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return dberr.Wrap(err, action)
		}
		actor, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[Actor])
		return dberr.Wrap(err, action)
	})
	if err != nil {
		return Actor{}, notFound(err, id)
	}
	return actor, nil
}
