package query

import (
	"reflect"
	"testing"
)

func TestBuilder_NoFilters(t *testing.T) {
	b := New("pharmacy", "name, ncpdp")
	b.OrderBy("name ASC")

	want := "SELECT name, ncpdp FROM pharmacy WHERE 1=1 ORDER BY name ASC"
	if got := b.SQL(); got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
	if len(b.Args()) != 0 {
		t.Errorf("expected no args, got %v", b.Args())
	}
}

func TestBuilder_EmptyValuesSkipped(t *testing.T) {
	b := New("pharmacy", "name, ncpdp")
	b.Eq("state", "")
	b.EqBool("open_24h", "")
	b.Contains("name", "")
	b.DateRange("date", "", "")

	if got := b.SQL(); got != "SELECT name, ncpdp FROM pharmacy WHERE 1=1" {
		t.Errorf("empty filters added predicates: %q", got)
	}
}

func TestBuilder_ConjunctiveComposition(t *testing.T) {
	b := New("pharmacy", "name, ncpdp")
	b.Contains("name", "corner")
	b.Eq("state", "OH")
	b.EqBool("open_24h", "1")
	b.OrderBy("name ASC")

	want := "SELECT name, ncpdp FROM pharmacy WHERE 1=1" +
		" AND name ILIKE $1 AND state = $2 AND open_24h = $3 ORDER BY name ASC"
	if got := b.SQL(); got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
	wantArgs := []interface{}{"%corner%", "OH", true}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", b.Args(), wantArgs)
	}
}

func TestBuilder_Limit(t *testing.T) {
	b := New("pharmacy", "DISTINCT city")
	b.Prefix("city", "spring")
	b.OrderBy("city ASC")
	b.Limit(10)

	want := "SELECT DISTINCT city FROM pharmacy WHERE 1=1 AND city ILIKE $1 ORDER BY city ASC LIMIT $2"
	if got := b.SQL(); got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
	wantArgs := []interface{}{`spring%`, 10}
	if !reflect.DeepEqual(b.Args(), wantArgs) {
		t.Errorf("Args() = %v, want %v", b.Args(), wantArgs)
	}
}

func TestBuilder_DateRange(t *testing.T) {
	b := New("appointment", "id")
	b.DateRange("date", "2026-01-01", "2026-01-31")

	want := "SELECT id FROM appointment WHERE 1=1 AND date >= $1 AND date <= $2"
	if got := b.SQL(); got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
}

func TestBuilder_DateRangeOpenEnded(t *testing.T) {
	b := New("appointment", "id")
	b.DateRange("date", "2026-01-01", "")

	if got := b.SQL(); got != "SELECT id FROM appointment WHERE 1=1 AND date >= $1" {
		t.Errorf("SQL() = %q", got)
	}
}

func TestBuilder_CountMatchesData(t *testing.T) {
	b := New("appointment", "id, title")
	b.Eq("status", "booked")

	if got := b.CountSQL(); got != "SELECT COUNT(*) FROM appointment WHERE 1=1 AND status = $1" {
		t.Errorf("CountSQL() = %q", got)
	}
	if !reflect.DeepEqual(b.CountArgs(), b.Args()) {
		t.Error("count args should match data args when no limit is set")
	}
}

func TestBuilder_PageSQL(t *testing.T) {
	b := New("appointment", "id")
	b.Eq("status", "booked")
	b.OrderBy("updated_at DESC")

	want := "SELECT id FROM appointment WHERE 1=1 AND status = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3"
	if got := b.PageSQL(); got != want {
		t.Errorf("PageSQL() = %q, want %q", got, want)
	}
	wantArgs := []interface{}{"booked", 20, 40}
	if !reflect.DeepEqual(b.PageArgs(20, 40), wantArgs) {
		t.Errorf("PageArgs() = %v, want %v", b.PageArgs(20, 40), wantArgs)
	}
}

func TestEscapeLike(t *testing.T) {
	b := New("pharmacy", "name")
	b.Contains("name", "100%_pure")

	args := b.Args()
	if len(args) != 1 || args[0] != `%100\%\_pure%` {
		t.Errorf("unexpected escaped arg: %v", args)
	}
}
