package appointment

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DateFormat is the civil-date form used on the wire and in filters.
const DateFormat = "2006-01-02"

// TimeFormat is the 5-character clock form used for start/end times.
const TimeFormat = "15:04"

// Appointment maps to the appointment table. The numeric ID and patient row
// id are internal; the API works in UUIDs. JSON encoding goes through
// MarshalJSON so that dates render in civil form.
type Appointment struct {
	ID                int64      `db:"id"`
	UUID              uuid.UUID  `db:"uuid"`
	Category          string     `db:"category"`
	Title             string     `db:"title"`
	DurationMinutes   int        `db:"duration_minutes"`
	Room              string     `db:"room"`
	Reason            string     `db:"reason"`
	Status            string     `db:"status"`
	Date              time.Time  `db:"date"`
	StartTime         string     `db:"start_time"`
	EndTime           string     `db:"end_time"`
	FacilityID        int64      `db:"facility_id"`
	BillingFacilityID int64      `db:"billing_facility_id"`
	ProviderID        int64      `db:"provider_id"`
	PatientID         int64      `db:"patient_id"`
	PatientUUID       uuid.UUID  `db:"patient_uuid"`
	RecurrenceRule    *string    `db:"recurrence_rule"`
	RecurrenceEnd     *time.Time `db:"recurrence_end"`
	RecurrenceGroupID *uuid.UUID `db:"recurrence_group_id"`
	Active            bool       `db:"active"`
	BillingHandled    bool       `db:"billing_handled"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`

	// ExclusionDates is the ordered set of suppressed occurrence dates for a
	// recurring series, loaded alongside the row. Not a table column.
	ExclusionDates []string `db:"-"`
}

// apptJSON controls the wire form of the date fields: civil dates, not full
// timestamps.
type apptJSON struct {
	UUID              uuid.UUID  `json:"uuid"`
	Category          string     `json:"category"`
	Title             string     `json:"title"`
	Duration          int        `json:"duration"`
	Room              string     `json:"room"`
	Reason            string     `json:"reason"`
	Status            string     `json:"status"`
	Date              string     `json:"date"`
	StartTime         string     `json:"start_time"`
	EndTime           string     `json:"end_time"`
	FacilityID        int64      `json:"facility_id"`
	BillingFacilityID int64      `json:"billing_facility_id"`
	ProviderID        int64      `json:"provider_id"`
	PatientUUID       uuid.UUID  `json:"patient_uuid"`
	RecurrenceRule    *string    `json:"recurrence_rule,omitempty"`
	RecurrenceEnd     string     `json:"recurrence_end,omitempty"`
	RecurrenceGroupID *uuid.UUID `json:"recurrence_group_id,omitempty"`
	Active            bool       `json:"active"`
	BillingHandled    bool       `json:"billing_handled"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	ExclusionDates    []string   `json:"exclusion_dates,omitempty"`
}

func (a *Appointment) toJSON() apptJSON {
	out := apptJSON{
		UUID:              a.UUID,
		Category:          a.Category,
		Title:             a.Title,
		Duration:          a.DurationMinutes,
		Room:              a.Room,
		Reason:            a.Reason,
		Status:            a.Status,
		Date:              a.Date.Format(DateFormat),
		StartTime:         a.StartTime,
		EndTime:           a.EndTime,
		FacilityID:        a.FacilityID,
		BillingFacilityID: a.BillingFacilityID,
		ProviderID:        a.ProviderID,
		PatientUUID:       a.PatientUUID,
		RecurrenceRule:    a.RecurrenceRule,
		RecurrenceGroupID: a.RecurrenceGroupID,
		Active:            a.Active,
		BillingHandled:    a.BillingHandled,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
		ExclusionDates:    a.ExclusionDates,
	}
	if a.RecurrenceEnd != nil {
		out.RecurrenceEnd = a.RecurrenceEnd.Format(DateFormat)
	}
	return out
}

func (a *Appointment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toJSON())
}

// IsRecurring reports whether the appointment belongs to a recurrence series.
func (a *Appointment) IsRecurring() bool {
	return a.RecurrenceGroupID != nil
}
