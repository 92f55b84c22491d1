package schema

// ActorTable represents the 'actor' table
type ActorTable struct {
	Table      string
	ID         string
	FirstName  string
	LastName   string
	LastUpdate string
}

// Actor is the schema definition for actor
var Actor = ActorTable{
	Table:      "actor",
	ID:         "actor_id",
	FirstName:  "first_name",
	LastName:   "last_name",
	LastUpdate: "last_update",
}

func (t ActorTable) Columns() []string {
	return []string{t.ID, t.FirstName, t.LastName, t.LastUpdate}
}
