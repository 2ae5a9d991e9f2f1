package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter carries the optional list filters. At most one of them is applied
// per query; precedence is resolved by the repository, highest first:
// PatientID, Title, Date, DateFrom/DateTo, Status.
type Filter struct {
	PatientID int64
	Title     string
	Date      string
	DateFrom  string
	DateTo    string
	Status    string
}

// Repository is the persistence surface for appointments, their recurrence
// series and their exclusion dates.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update applies a partial update keyed by column name and returns
	// whether a row matched. updated_at is bumped by the implementation.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error)

	DeleteByID(ctx context.Context, id int64) error

	List(ctx context.Context, f Filter) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error)

	// Series returns every row of a recurrence group, oldest date first.
	// When providerID is non-nil the rows are restricted to that provider.
	Series(ctx context.Context, groupID uuid.UUID, providerID *int64) ([]Appointment, error)

	// TruncateSeries moves the series end of every row in the group to the
	// day before cutoff so occurrences from cutoff onward stop generating.
	TruncateSeries(ctx context.Context, groupID uuid.UUID, providerID *int64, cutoff time.Time) error

	// Exclusion rows suppress single occurrences of a recurrence group. New
	// dates append to the set; existing dates are never replaced.
	AddExclusion(ctx context.Context, groupID uuid.UUID, date time.Time) error
	ListExclusions(ctx context.Context, groupID uuid.UUID) ([]string, error)
	DeleteExclusions(ctx context.Context, groupID uuid.UUID) error
}
