package actor

import "context"

// Mapper translates between Actor values and persisted rows.
//
// Every call runs in its own session. UpdateActorFirstName followed by
// UpdateActorLastName is therefore two units of work; use UpdateActor to change
// both names atomically.
type Mapper interface {
	CreateActor(ctx context.Context, firstName, lastName string) (Actor, error)
	ReadActors(ctx context.Context) ([]Actor, error)
	ReadActor(ctx context.Context, id int) (Actor, error)
	UpdateActorFirstName(ctx context.Context, id int, firstName string) (Actor, error)
	UpdateActorLastName(ctx context.Context, id int, lastName string) (Actor, error)
	UpdateActor(ctx context.Context, id int, changes Changes) (Actor, error)
	DeleteActor(ctx context.Context, id int) error
}
