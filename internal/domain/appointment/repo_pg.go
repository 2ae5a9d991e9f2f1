package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrkit/scheduling/internal/platform/query"
)

const apptCols = `id, uuid, category, title, duration_minutes, room, reason, status,
	date, start_time, end_time, facility_id, billing_facility_id, provider_id,
	patient_id, patient_uuid, recurrence_rule, recurrence_end, recurrence_group_id,
	active, billing_handled, created_at, updated_at`

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID, &a.UUID, &a.Category, &a.Title, &a.DurationMinutes, &a.Room,
		&a.Reason, &a.Status, &a.Date, &a.StartTime, &a.EndTime, &a.FacilityID,
		&a.BillingFacilityID, &a.ProviderID, &a.PatientID, &a.PatientUUID,
		&a.RecurrenceRule, &a.RecurrenceEnd, &a.RecurrenceGroupID, &a.Active,
		&a.BillingHandled, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) collect(ctx context.Context, sql string, args ...interface{}) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *a)
	}
	return appts, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	sql := `INSERT INTO appointment (
		uuid, category, title, duration_minutes, room, reason, status,
		date, start_time, end_time, facility_id, billing_facility_id, provider_id,
		patient_id, patient_uuid, recurrence_rule, recurrence_end, recurrence_group_id,
		active, billing_handled
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, sql,
		a.UUID, a.Category, a.Title, a.DurationMinutes, a.Room, a.Reason, a.Status,
		a.Date, a.StartTime, a.EndTime, a.FacilityID, a.BillingFacilityID, a.ProviderID,
		a.PatientID, a.PatientUUID, a.RecurrenceRule, a.RecurrenceEnd, a.RecurrenceGroupID,
		a.Active, a.BillingHandled,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repoPG) GetByUUID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	sql := fmt.Sprintf("SELECT %s FROM appointment WHERE uuid = $1", apptCols)
	a, err := scanAppointment(r.pool.QueryRow(ctx, sql, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if a.RecurrenceGroupID != nil {
		a.ExclusionDates, err = r.ListExclusions(ctx, *a.RecurrenceGroupID)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return true, nil
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols)+1)
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, fields[col])
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	sql := fmt.Sprintf("UPDATE appointment SET %s WHERE uuid = $%d",
		strings.Join(sets, ", "), len(args))
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM appointment WHERE id = $1", id)
	return err
}

// applyFilter appends the single highest-precedence predicate the filter
// supplies. Filters are mutually exclusive: patient, then title, then exact
// date, then date range, then status.
func applyFilter(b *query.Builder, f Filter) {
	switch {
	case f.PatientID != 0:
		b.Add(fmt.Sprintf("patient_id = $%d", b.Idx()), f.PatientID)
	case f.Title != "":
		b.Contains("title", f.Title)
	case f.Date != "":
		b.DateEq("date", f.Date)
	case f.DateFrom != "" || f.DateTo != "":
		b.DateRange("date", f.DateFrom, f.DateTo)
	case f.Status != "":
		b.Contains("status", f.Status)
	}
}

func (r *repoPG) List(ctx context.Context, f Filter) ([]Appointment, error) {
	b := query.New("appointment", apptCols)
	applyFilter(b, f)
	b.OrderBy("updated_at DESC")
	return r.collect(ctx, b.SQL(), b.Args()...)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error) {
	return r.List(ctx, Filter{PatientID: patientID})
}

func (r *repoPG) Series(ctx context.Context, groupID uuid.UUID, providerID *int64) ([]Appointment, error) {
	b := query.New("appointment", apptCols)
	b.Add(fmt.Sprintf("recurrence_group_id = $%d", b.Idx()), groupID)
	if providerID != nil {
		b.Add(fmt.Sprintf("provider_id = $%d", b.Idx()), *providerID)
	}
	b.OrderBy("date ASC, id ASC")
	return r.collect(ctx, b.SQL(), b.Args()...)
}

func (r *repoPG) TruncateSeries(ctx context.Context, groupID uuid.UUID, providerID *int64, cutoff time.Time) error {
	end := cutoff.AddDate(0, 0, -1)
	sql := "UPDATE appointment SET recurrence_end = $1, updated_at = NOW() WHERE recurrence_group_id = $2"
	args := []interface{}{end, groupID}
	if providerID != nil {
		sql += " AND provider_id = $3"
		args = append(args, *providerID)
	}
	_, err := r.pool.Exec(ctx, sql, args...)
	return err
}

func (r *repoPG) AddExclusion(ctx context.Context, groupID uuid.UUID, date time.Time) error {
	sql := `INSERT INTO appointment_exclusion (recurrence_group_id, exception_date)
		VALUES ($1, $2) ON CONFLICT (recurrence_group_id, exception_date) DO NOTHING`
	_, err := r.pool.Exec(ctx, sql, groupID, date)
	return err
}

func (r *repoPG) ListExclusions(ctx context.Context, groupID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT exception_date FROM appointment_exclusion WHERE recurrence_group_id = $1 ORDER BY exception_date ASC",
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d.Format(DateFormat))
	}
	return dates, rows.Err()
}

func (r *repoPG) DeleteExclusions(ctx context.Context, groupID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM appointment_exclusion WHERE recurrence_group_id = $1", groupID)
	return err
}
