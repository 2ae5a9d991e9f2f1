package appointment

import (
	"context"
	"testing"
)

type stubLookup struct {
	known map[int64]bool
}

func (s *stubLookup) Exists(_ context.Context, id int64) (bool, error) {
	return s.known[id], nil
}

func allKnown() *stubLookup {
	return &stubLookup{known: map[int64]bool{1: true, 2: true, 3: true}}
}

func validCreate() *CreateRequest {
	return &CreateRequest{
		Category:          "office_visit",
		Title:             "Annual physical",
		Duration:          30,
		Room:              "2B",
		Reason:            "routine checkup",
		Status:            "scheduled",
		Date:              "2026-09-01",
		StartTime:         "09:00",
		EndTime:           "09:30",
		FacilityID:        1,
		BillingFacilityID: 2,
		ProviderID:        3,
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	v := NewValidator(allKnown(), allKnown())
	fe, err := v.ValidateCreate(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fe != nil {
		t.Errorf("expected no field errors, got %v", fe)
	}
}

func TestValidateCreate_MissingFieldsAreKeyed(t *testing.T) {
	v := NewValidator(allKnown(), allKnown())
	fe, err := v.ValidateCreate(context.Background(), &CreateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"category", "title", "duration", "date", "start_time", "provider_id"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("expected an error keyed by %q, got %v", field, fe)
		}
	}
}

func TestValidateCreate_TitleLength(t *testing.T) {
	v := NewValidator(allKnown(), allKnown())

	req := validCreate()
	req.Title = "x"
	fe, _ := v.ValidateCreate(context.Background(), req)
	if _, ok := fe["title"]; !ok {
		t.Errorf("one-character title should fail, got %v", fe)
	}

	req = validCreate()
	req.Title = "ok"
	fe, _ = v.ValidateCreate(context.Background(), req)
	if fe != nil {
		t.Errorf("two-character title should pass, got %v", fe)
	}
}

func TestValidateCreate_DateAndTimeShapes(t *testing.T) {
	v := NewValidator(allKnown(), allKnown())

	req := validCreate()
	req.Date = "09/01/2026"
	fe, _ := v.ValidateCreate(context.Background(), req)
	if _, ok := fe["date"]; !ok {
		t.Errorf("slash date should fail, got %v", fe)
	}

	req = validCreate()
	req.StartTime = "9:00"
	fe, _ = v.ValidateCreate(context.Background(), req)
	if _, ok := fe["start_time"]; !ok {
		t.Errorf("4-character time should fail, got %v", fe)
	}
}

func TestValidateCreate_UnknownReferences(t *testing.T) {
	v := NewValidator(&stubLookup{known: map[int64]bool{}}, allKnown())
	fe, err := v.ValidateCreate(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fe["provider_id"]; !ok {
		t.Errorf("unknown provider should be a field error, got %v", fe)
	}

	v = NewValidator(allKnown(), &stubLookup{known: map[int64]bool{1: true}})
	req := validCreate()
	req.BillingFacilityID = 99
	fe, _ = v.ValidateCreate(context.Background(), req)
	if _, ok := fe["billing_facility_id"]; !ok {
		t.Errorf("unknown billing facility should be a field error, got %v", fe)
	}
}

func TestValidateUpdate_OnlySuppliedFieldsChecked(t *testing.T) {
	v := NewValidator(allKnown(), allKnown())

	fe, err := v.ValidateUpdate(context.Background(), &UpdateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fe != nil {
		t.Errorf("empty update should be valid, got %v", fe)
	}

	bad := "x"
	fe, _ = v.ValidateUpdate(context.Background(), &UpdateRequest{Title: &bad})
	if _, ok := fe["title"]; !ok {
		t.Errorf("supplied short title should fail, got %v", fe)
	}
}
