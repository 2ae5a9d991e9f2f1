package pharmacy

import (
	"context"
	"testing"
)

type mockRepo struct {
	cities     []string
	entries    []Entry
	gotFilters Filters
	gotLimit   int
	err        error
}

func (m *mockRepo) SearchCities(_ context.Context, f Filters, limit int) ([]string, error) {
	m.gotFilters = f
	m.gotLimit = limit
	return m.cities, m.err
}

func (m *mockRepo) Search(_ context.Context, f Filters) ([]Entry, error) {
	m.gotFilters = f
	return m.entries, m.err
}

func TestService_CityMode(t *testing.T) {
	repo := &mockRepo{cities: []string{"Akron", "Athens"}}
	svc := NewService(repo)

	result, err := svc.Search(context.Background(), ModeCity, Filters{Term: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cities, ok := result.([]string)
	if !ok || len(cities) != 2 {
		t.Errorf("expected 2 city strings, got %v", result)
	}
	if repo.gotLimit != cityLimit {
		t.Errorf("expected city search limit %d, got %d", cityLimit, repo.gotLimit)
	}
}

func TestService_PharmacyAndDropShareOnePath(t *testing.T) {
	repo := &mockRepo{entries: []Entry{{Name: "Corner Drug", NCPDP: "1234567"}}}
	svc := NewService(repo)

	for _, mode := range []string{ModePharmacy, ModeDrop} {
		result, err := svc.Search(context.Background(), mode, Filters{Term: "corner"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mode, err)
		}
		entries, ok := result.([]Entry)
		if !ok || len(entries) != 1 || entries[0].NCPDP != "1234567" {
			t.Errorf("%s: unexpected result %v", mode, result)
		}
	}
}

func TestService_UnknownMode(t *testing.T) {
	svc := NewService(&mockRepo{})
	if _, err := svc.Search(context.Background(), "weno_bogus", Filters{}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestService_EmptyResultsAreEmptyArrays(t *testing.T) {
	svc := NewService(&mockRepo{})

	result, err := svc.Search(context.Background(), ModeCity, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cities, ok := result.([]string); !ok || cities == nil {
		t.Errorf("expected empty non-nil city slice, got %#v", result)
	}

	result, err = svc.Search(context.Background(), ModePharmacy, Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries, ok := result.([]Entry); !ok || entries == nil {
		t.Errorf("expected empty non-nil entry slice, got %#v", result)
	}
}
