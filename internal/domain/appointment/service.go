package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emrkit/scheduling/internal/domain/identity"
	"github.com/emrkit/scheduling/internal/platform/hooks"
)

// Deletion scopes for a recurring appointment.
const (
	ScopeCurrent = "current"
	ScopeFuture  = "future"
	ScopeAll     = "all"
)

var (
	ErrNotFound     = errors.New("appointment not found")
	ErrInvalidScope = errors.New("invalid deletion scope")
	ErrInvalidDate  = errors.New("invalid occurrence date")
)

// ListQuery carries the raw list filters from the request. At most one is
// honored, in the precedence the repository applies.
type ListQuery struct {
	PatientUUID string
	Title       string
	Date        string
	DateFrom    string
	DateTo      string
	Status      string
}

type Service struct {
	repo      Repository
	patients  identity.PatientRepository
	validator *Validator
	notifier  *hooks.Notifier

	// multiProvider widens series operations to every provider sharing a
	// recurrence group. When false a series action only touches rows owned
	// by the provider of the appointment it was invoked on.
	multiProvider bool

	logger zerolog.Logger
}

func NewService(
	repo Repository,
	patients identity.PatientRepository,
	validator *Validator,
	notifier *hooks.Notifier,
	multiProvider bool,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:          repo,
		patients:      patients,
		validator:     validator,
		notifier:      notifier,
		multiProvider: multiProvider,
		logger:        logger.With().Str("component", "appointment").Logger(),
	}
}

// Create validates the payload, resolves the patient and persists a new
// appointment. A non-nil FieldErrors means the payload was rejected. A nil
// appointment with no error means the patient UUID did not resolve; nothing
// is created and the caller reports an empty result.
func (s *Service) Create(ctx context.Context, patientUUID uuid.UUID, req *CreateRequest) (*Appointment, FieldErrors, error) {
	fe, err := s.validator.ValidateCreate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if fe != nil {
		return nil, fe, nil
	}

	patientID, found, err := s.patients.ResolveUUID(ctx, patientUUID)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		return nil, nil, nil
	}

	date, err := time.Parse(DateFormat, req.Date)
	if err != nil {
		return nil, FieldErrors{"date": "must match the " + DateFormat + " format"}, nil
	}

	a := &Appointment{
		UUID:              uuid.New(),
		Category:          req.Category,
		Title:             req.Title,
		DurationMinutes:   req.Duration,
		Room:              req.Room,
		Reason:            req.Reason,
		Status:            req.Status,
		Date:              date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		FacilityID:        req.FacilityID,
		BillingFacilityID: req.BillingFacilityID,
		ProviderID:        req.ProviderID,
		PatientID:         patientID,
		PatientUUID:       patientUUID,
		Active:            true,
		BillingHandled:    false,
	}
	if req.RecurrenceRule != "" {
		rule := req.RecurrenceRule
		a.RecurrenceRule = &rule
		group := uuid.New()
		a.RecurrenceGroupID = &group
		if req.RecurrenceEnd != "" {
			end, err := time.Parse(DateFormat, req.RecurrenceEnd)
			if err != nil {
				return nil, FieldErrors{"recurrence_end": "must match the " + DateFormat + " format"}, nil
			}
			a.RecurrenceEnd = &end
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, nil, fmt.Errorf("create appointment: %w", err)
	}
	s.logger.Info().Str("uuid", a.UUID.String()).Msg("appointment created")
	return a, nil, nil
}

// Get loads one appointment by its public identifier.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// Update applies a partial update and returns the refreshed row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Appointment, FieldErrors, error) {
	fe, err := s.validator.ValidateUpdate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if fe != nil {
		return nil, fe, nil
	}

	fields := map[string]interface{}{}
	setIf := func(col string, v interface{}, present bool) {
		if present {
			fields[col] = v
		}
	}
	setIf("category", deref(req.Category), req.Category != nil)
	setIf("title", deref(req.Title), req.Title != nil)
	setIf("room", deref(req.Room), req.Room != nil)
	setIf("reason", deref(req.Reason), req.Reason != nil)
	setIf("status", deref(req.Status), req.Status != nil)
	setIf("start_time", deref(req.StartTime), req.StartTime != nil)
	setIf("end_time", deref(req.EndTime), req.EndTime != nil)
	if req.Duration != nil {
		fields["duration_minutes"] = *req.Duration
	}
	if req.FacilityID != nil {
		fields["facility_id"] = *req.FacilityID
	}
	if req.BillingFacilityID != nil {
		fields["billing_facility_id"] = *req.BillingFacilityID
	}
	if req.ProviderID != nil {
		fields["provider_id"] = *req.ProviderID
	}
	if req.Date != nil {
		date, err := time.Parse(DateFormat, *req.Date)
		if err != nil {
			return nil, FieldErrors{"date": "must match the " + DateFormat + " format"}, nil
		}
		fields["date"] = date
	}
	if req.RecurrenceEnd != nil {
		end, err := time.Parse(DateFormat, *req.RecurrenceEnd)
		if err != nil {
			return nil, FieldErrors{"recurrence_end": "must match the " + DateFormat + " format"}, nil
		}
		fields["recurrence_end"] = end
	}

	matched, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, nil, fmt.Errorf("update appointment: %w", err)
	}
	if !matched {
		return nil, nil, ErrNotFound
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return a, nil, nil
}

// List applies the highest-precedence filter the query supplies. A patient
// filter that does not resolve to a known patient yields an empty result,
// not an error.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Appointment, error) {
	f := Filter{
		Title:    q.Title,
		Date:     q.Date,
		DateFrom: q.DateFrom,
		DateTo:   q.DateTo,
		Status:   q.Status,
	}
	if q.PatientUUID != "" {
		pid, ok, err := s.resolvePatient(ctx, q.PatientUUID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []Appointment{}, nil
		}
		f.PatientID = pid
	}
	appts, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []Appointment{}
	}
	return appts, nil
}

// ListForPatient lists a patient's appointments by public identifier.
func (s *Service) ListForPatient(ctx context.Context, patientUUID uuid.UUID) ([]Appointment, error) {
	pid, found, err := s.patients.ResolveUUID(ctx, patientUUID)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Appointment{}, nil
	}
	appts, err := s.repo.ListByPatient(ctx, pid)
	if err != nil {
		return nil, err
	}
	if appts == nil {
		appts = []Appointment{}
	}
	return appts, nil
}

// Delete removes a single appointment outright, firing the lifecycle hooks
// around the row removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	return s.deleteRow(ctx, a)
}

// DeleteOccurrence removes part or all of a recurring appointment.
//
// Scope "current" suppresses the single occurrence on date by recording an
// exclusion. Scope "future" truncates the series before date, except when
// date is the series' own first occurrence, in which case the whole series
// goes. Scope "all" deletes every row of the recurrence group.
//
// On a non-recurring appointment every scope degrades to a plain delete.
func (s *Service) DeleteOccurrence(ctx context.Context, id uuid.UUID, scope, date string) error {
	a, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if !a.IsRecurring() {
		return s.deleteRow(ctx, a)
	}

	var providerID *int64
	if !s.multiProvider {
		pid := a.ProviderID
		providerID = &pid
	}

	switch scope {
	case ScopeCurrent:
		occ, err := time.Parse(DateFormat, date)
		if err != nil {
			return ErrInvalidDate
		}
		if err := s.repo.AddExclusion(ctx, *a.RecurrenceGroupID, occ); err != nil {
			s.logger.Error().Err(err).
				Str("uuid", a.UUID.String()).
				Str("group", a.RecurrenceGroupID.String()).
				Str("date", date).
				Msg("occurrence exclusion failed")
			return fmt.Errorf("exclude occurrence: %w", err)
		}
		return nil

	case ScopeFuture:
		occ, err := time.Parse(DateFormat, date)
		if err != nil {
			return ErrInvalidDate
		}
		first, err := s.seriesFirstDate(ctx, *a.RecurrenceGroupID, providerID, a)
		if err != nil {
			return err
		}
		if !occ.After(first) {
			return s.deleteSeries(ctx, *a.RecurrenceGroupID, providerID)
		}
		if err := s.repo.TruncateSeries(ctx, *a.RecurrenceGroupID, providerID, occ); err != nil {
			s.logger.Error().Err(err).
				Str("uuid", a.UUID.String()).
				Str("group", a.RecurrenceGroupID.String()).
				Str("cutoff", date).
				Msg("series truncation failed")
			return fmt.Errorf("truncate series: %w", err)
		}
		return nil

	case ScopeAll:
		return s.deleteSeries(ctx, *a.RecurrenceGroupID, providerID)

	default:
		return ErrInvalidScope
	}
}

// seriesFirstDate is the earliest occurrence date of the series itself, not
// of whatever row the request happened to target.
func (s *Service) seriesFirstDate(ctx context.Context, groupID uuid.UUID, providerID *int64, fallback *Appointment) (time.Time, error) {
	rows, err := s.repo.Series(ctx, groupID, providerID)
	if err != nil {
		return time.Time{}, err
	}
	if len(rows) == 0 {
		return fallback.Date, nil
	}
	return rows[0].Date, nil
}

func (s *Service) deleteSeries(ctx context.Context, groupID uuid.UUID, providerID *int64) error {
	rows, err := s.repo.Series(ctx, groupID, providerID)
	if err != nil {
		return err
	}
	for i := range rows {
		if err := s.deleteRow(ctx, &rows[i]); err != nil {
			return err
		}
	}

	// Exclusion rows only matter while the group still has rows. In
	// single-provider mode another provider's rows may remain.
	remaining, err := s.repo.Series(ctx, groupID, nil)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return s.repo.DeleteExclusions(ctx, groupID)
	}
	return nil
}

func (s *Service) deleteRow(ctx context.Context, a *Appointment) error {
	ev := hooks.Event{Action: "delete", ResourceType: "appointment", ResourceID: a.UUID.String()}
	s.notifier.FirePre(ctx, ev)
	if err := s.repo.DeleteByID(ctx, a.ID); err != nil {
		s.logger.Error().Err(err).Str("uuid", a.UUID.String()).Msg("appointment delete failed")
		return fmt.Errorf("delete appointment: %w", err)
	}
	s.notifier.FirePost(ctx, ev)
	s.logger.Info().Str("uuid", a.UUID.String()).Msg("appointment deleted")
	return nil
}

func (s *Service) resolvePatient(ctx context.Context, raw string) (int64, bool, error) {
	pu, err := uuid.Parse(raw)
	if err != nil {
		return 0, false, nil
	}
	return s.patients.ResolveUUID(ctx, pu)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
