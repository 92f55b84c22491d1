package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/myapi/pkg/pointer"
)

// Actor is the sole persisted entity: a performer identified by a server-assigned id.
type Actor struct {
	ID         int       `json:"actor_id"    db:"actor_id"`
	FirstName  string    `json:"first_name"  db:"first_name"`
	LastName   string    `json:"last_name"   db:"last_name"`
	LastUpdate time.Time `json:"last_update,omitzero" db:"last_update"`
}

// Changes is the subset of name fields to overwrite. Nil fields are left untouched.
type Changes struct {
	FirstName *string
	LastName  *string
}

// IsEmpty reports whether no field would change.
func (changes Changes) IsEmpty() bool {
	return changes.FirstName == nil && changes.LastName == nil
}

// NotFoundError is returned by every [Mapper] operation addressing an id with no row.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Actor with ID '%d' does not exist", e.ID)
}

// IsNotFound reports whether err is, or wraps, a [NotFoundError].
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// CreateRequest is the POST body. Pointers distinguish a missing field from "".
type CreateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateRequest is the PATCH body.
type UpdateRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Changes keeps only the fields that carry a non-empty value.
func (request UpdateRequest) Changes() Changes {
	return Changes{
		FirstName: pointer.NonZero(request.FirstName),
		LastName:  pointer.NonZero(request.LastName),
	}
}

// DeleteResponse echoes the removed id.
type DeleteResponse struct {
	ActorID int `json:"actor_id"`
}

// Global field names for validation
const (
	FieldActorID   = "actor_id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)
