package identity

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. The numeric ID is internal; the UUID is
// the only identifier exposed at the API boundary.
type Patient struct {
	ID        int64     `db:"id" json:"-"`
	UUID      uuid.UUID `db:"uuid" json:"uuid"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Provider maps to the provider table. Appointments reference providers by
// internal id.
type Provider struct {
	ID        int64     `db:"id" json:"id"`
	UUID      uuid.UUID `db:"uuid" json:"uuid"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Active    bool      `db:"active" json:"active"`
}
