package facility

import "github.com/google/uuid"

// Facility maps to the facility table. Appointments reference it twice: as
// the service location and as the billing location.
type Facility struct {
	ID   int64     `db:"id" json:"id"`
	UUID uuid.UUID `db:"uuid" json:"uuid"`
	Name string    `db:"name" json:"name"`
}
