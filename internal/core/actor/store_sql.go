package actor

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/taibuivan/myapi/internal/platform/dberr"
	"github.com/taibuivan/myapi/internal/platform/sqldb"
)

// SQLMapper implements [Mapper] on database/sql through sqlx. Each call holds one
// pooled connection for the duration of its transaction.
type SQLMapper struct {
	sessions *sqldb.Sessions
}

// NewSQLMapper constructs a database/sql backed actor mapper.
func NewSQLMapper(sessions *sqldb.Sessions) *SQLMapper {
	return &SQLMapper{sessions: sessions}
}

func (mapper *SQLMapper) ReadActors(ctx context.Context) ([]Actor, error) {
	query, args, err := selectAllQuery()
	if err != nil {
		return nil, buildErr(err, "read_actors")
	}

	actors := []Actor{}
	err = mapper.sessions.Do(ctx, func(tx *sqlx.Tx) error {
		return dberr.Wrap(tx.SelectContext(ctx, &actors, query, args...), "read_actors")
	})
	if err != nil {
		return nil, err
	}

	return actors, nil
}

func (mapper *SQLMapper) ReadActor(ctx context.Context, id int) (Actor, error) {
	if !storableID(id) {
		return Actor{}, &NotFoundError{ID: id}
	}
	query, args, err := selectOneQuery(id)
	if err != nil {
		return Actor{}, buildErr(err, "read_actor")
	}
	return mapper.one(ctx, id, "read_actor", query, args)
}

func (mapper *SQLMapper) CreateActor(ctx context.Context, firstName, lastName string) (Actor, error) {
	query, args, err := insertQuery(firstName, lastName)
	if err != nil {
		return Actor{}, buildErr(err, "create_actor")
	}
	return mapper.one(ctx, 0, "create_actor", query, args)
}

func (mapper *SQLMapper) UpdateActorFirstName(ctx context.Context, id int, firstName string) (Actor, error) {
	return mapper.UpdateActor(ctx, id, Changes{FirstName: &firstName})
}

func (mapper *SQLMapper) UpdateActorLastName(ctx context.Context, id int, lastName string) (Actor, error) {
	return mapper.UpdateActor(ctx, id, Changes{LastName: &lastName})
}

func (mapper *SQLMapper) UpdateActor(ctx context.Context, id int, changes Changes) (Actor, error) {
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

func (mapper *SQLMapper) DeleteActor(ctx context.Context, id int) error {
	if !storableID(id) {
		return &NotFoundError{ID: id}
	}
	query, args, err := deleteQuery(id)
	if err != nil {
		return buildErr(err, "delete_actor")
	}

	err = mapper.sessions.Do(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return dberr.Wrap(err, "delete_actor")
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return dberr.Wrap(err, "delete_actor")
		}
		if affected == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
	return notFound(err, id)
}

func (mapper *SQLMapper) one(ctx context.Context, id int, action, query string, args []any) (Actor, error) {
	var actor Actor
	err := mapper.sessions.Do(ctx, func(tx *sqlx.Tx) error {
		return dberr.Wrap(tx.GetContext(ctx, &actor, query, args...), action)
	})
	if err != nil {
		return Actor{}, notFound(err, id)
	}
	return actor, nil
}
