package actor

import (
	"context"
	"log/slog"

	"github.com/taibuivan/myapi/internal/platform/validate"
	"github.com/taibuivan/myapi/pkg/pointer"
)

// Service validates actor requests and delegates persistence to a [Mapper].
type Service struct {
	mapper Mapper
	logger *slog.Logger
}

// NewService constructs an actor service over the given mapper.
func NewService(mapper Mapper, logger *slog.Logger) *Service {
	return &Service{
		mapper: mapper,
		logger: logger,
	}
}

func (service *Service) ListActors(ctx context.Context) ([]Actor, error) {
	return service.mapper.ReadActors(ctx)
}

func (service *Service) GetActor(ctx context.Context, id int) (Actor, error) {
	return service.mapper.ReadActor(ctx, id)
}

// CreateActor requires both names to be present. Empty strings are accepted verbatim.
func (service *Service) CreateActor(ctx context.Context, input CreateRequest) (Actor, error) {
	validator := &validate.Validator{}

	validator.Present(FieldFirstName, input.FirstName).NoNUL(FieldFirstName, input.FirstName)
	validator.Present(FieldLastName, input.LastName).NoNUL(FieldLastName, input.LastName)

	if err := validator.Err(); err != nil {
		return Actor{}, err
	}

	actor, err := service.mapper.CreateActor(ctx, pointer.Val(input.FirstName), pointer.Val(input.LastName))
	if err != nil {
		return Actor{}, err
	}

	service.logger.InfoContext(ctx, "actor_created", slog.Int("actor_id", actor.ID))
	return actor, nil
}

// UpdateActor applies the non-empty fields of input in one unit of work.
func (service *Service) UpdateActor(ctx context.Context, id int, input UpdateRequest) (Actor, error) {
	changes := input.Changes()

	validator := &validate.Validator{}
	validator.NoNUL(FieldFirstName, changes.FirstName).NoNUL(FieldLastName, changes.LastName)

	if err := validator.Err(); err != nil {
		return Actor{}, err
	}

	actor, err := service.mapper.UpdateActor(ctx, id, changes)
	if err != nil {
		return Actor{}, err
	}

	if !changes.IsEmpty() {
		service.logger.InfoContext(ctx, "actor_updated",
			slog.Int("actor_id", id),
			slog.Bool("first_name", changes.FirstName != nil),
			slog.Bool("last_name", changes.LastName != nil),
		)
	}
	return actor, nil
}

func (service *Service) DeleteActor(ctx context.Context, id int) error {
	if err := service.mapper.DeleteActor(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "actor_deleted", slog.Int("actor_id", id))
	return nil
}
