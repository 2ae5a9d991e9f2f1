package appointment

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateRequest is the creation payload. Every field below is required by
// the creation rule set.
type CreateRequest struct {
	Category          string `json:"category" validate:"required"`
	Title             string `json:"title" validate:"required,min=2,max=150"`
	Duration          int    `json:"duration" validate:"required,gt=0"`
	Room              string `json:"room" validate:"required"`
	Reason            string `json:"reason" validate:"required"`
	Status            string `json:"status" validate:"required"`
	Date              string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime         string `json:"start_time" validate:"required,len=5,datetime=15:04"`
	EndTime           string `json:"end_time" validate:"required,len=5,datetime=15:04"`
	FacilityID        int64  `json:"facility_id" validate:"required"`
	BillingFacilityID int64  `json:"billing_facility_id" validate:"required"`
	ProviderID        int64  `json:"provider_id" validate:"required"`
	RecurrenceRule    string `json:"recurrence_rule" validate:"omitempty"`
	RecurrenceEnd     string `json:"recurrence_end" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateRequest is the partial-update payload. Nothing is required; supplied
// fields are shape-checked with the same rules as creation.
type UpdateRequest struct {
	Category          *string `json:"category" validate:"omitempty"`
	Title             *string `json:"title" validate:"omitempty,min=2,max=150"`
	Duration          *int    `json:"duration" validate:"omitempty,gt=0"`
	Room              *string `json:"room" validate:"omitempty"`
	Reason            *string `json:"reason" validate:"omitempty"`
	Status            *string `json:"status" validate:"omitempty"`
	Date              *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime         *string `json:"start_time" validate:"omitempty,len=5,datetime=15:04"`
	EndTime           *string `json:"end_time" validate:"omitempty,len=5,datetime=15:04"`
	FacilityID        *int64  `json:"facility_id" validate:"omitempty"`
	BillingFacilityID *int64  `json:"billing_facility_id" validate:"omitempty"`
	ProviderID        *int64  `json:"provider_id" validate:"omitempty"`
	RecurrenceEnd     *string `json:"recurrence_end" validate:"omitempty,datetime=2006-01-02"`
}

// ProviderLookup answers whether a referenced provider exists. Lookups
// return results, never panic, so a failed reference reads as a field error.
type ProviderLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// FacilityLookup answers whether a referenced facility exists.
type FacilityLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// FieldErrors is a field-keyed validation error set, returned to the client
// as the 400 body before any mutation happens.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator applies the declarative rule sets plus the data-dependent
// reference checks.
type Validator struct {
	validate   *validator.Validate
	providers  ProviderLookup
	facilities FacilityLookup
}

func NewValidator(providers ProviderLookup, facilities FacilityLookup) *Validator {
	return &Validator{
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		providers:  providers,
		facilities: facilities,
	}
}

// ValidateCreate runs the creation rule set. The returned FieldErrors is nil
// when the request is valid; a non-nil error reports a lookup failure.
func (v *Validator) ValidateCreate(ctx context.Context, req *CreateRequest) (FieldErrors, error) {
	fe := v.structErrors(req)

	if req.ProviderID != 0 {
		ok, err := v.providers.Exists(ctx, req.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("provider lookup: %w", err)
		}
		if !ok {
			fe = setFieldError(fe, "provider_id", "referenced provider does not exist")
		}
	}
	for field, id := range map[string]int64{
		"facility_id":         req.FacilityID,
		"billing_facility_id": req.BillingFacilityID,
	} {
		if id == 0 {
			continue
		}
		ok, err := v.facilities.Exists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("facility lookup: %w", err)
		}
		if !ok {
			fe = setFieldError(fe, field, "referenced facility does not exist")
		}
	}

	if len(fe) == 0 {
		return nil, nil
	}
	return fe, nil
}

// ValidateUpdate shape-checks whichever fields the partial update supplies.
func (v *Validator) ValidateUpdate(ctx context.Context, req *UpdateRequest) (FieldErrors, error) {
	fe := v.structErrors(req)

	if req.ProviderID != nil {
		ok, err := v.providers.Exists(ctx, *req.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("provider lookup: %w", err)
		}
		if !ok {
			fe = setFieldError(fe, "provider_id", "referenced provider does not exist")
		}
	}
	for field, id := range map[string]*int64{
		"facility_id":         req.FacilityID,
		"billing_facility_id": req.BillingFacilityID,
	} {
		if id == nil {
			continue
		}
		ok, err := v.facilities.Exists(ctx, *id)
		if err != nil {
			return nil, fmt.Errorf("facility lookup: %w", err)
		}
		if !ok {
			fe = setFieldError(fe, field, "referenced facility does not exist")
		}
	}

	if len(fe) == 0 {
		return nil, nil
	}
	return fe, nil
}

func (v *Validator) structErrors(req interface{}) FieldErrors {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": err.Error()}
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		fe[jsonFieldName(req, e.StructField())] = ruleMessage(e)
	}
	return fe
}

func setFieldError(fe FieldErrors, field, msg string) FieldErrors {
	if fe == nil {
		fe = FieldErrors{}
	}
	// Structural errors take precedence over reference errors.
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
	return fe
}

func ruleMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	case "datetime":
		return fmt.Sprintf("must match the %s format", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return "is invalid"
	}
}

// jsonFieldName maps a struct field name back to its json tag so clients see
// the names they sent.
func jsonFieldName(req interface{}, structField string) string {
	t := reflect.TypeOf(req)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" {
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			if tag != "" && tag != "-" {
				return tag
			}
		}
	}
	return structField
}
