package appointment

import (
	"strings"
	"testing"

	"github.com/emrkit/scheduling/internal/platform/query"
)

func TestApplyFilter_OnlyOneApplies(t *testing.T) {
	// Every filter supplied at once: only the patient predicate survives.
	b := query.New("appointment", apptCols)
	applyFilter(b, Filter{
		PatientID: 42,
		Title:     "physical",
		Date:      "2026-09-01",
		DateFrom:  "2026-09-01",
		DateTo:    "2026-09-30",
		Status:    "scheduled",
	})

	sql := b.SQL()
	if !strings.Contains(sql, "patient_id = $1") {
		t.Errorf("expected the patient predicate, sql: %q", sql)
	}
	if got := strings.Count(sql, " AND "); got != 1 {
		t.Errorf("expected exactly one predicate, got %d: %q", got, sql)
	}
}

func TestApplyFilter_Precedence(t *testing.T) {
	cases := []struct {
		name string
		f    Filter
		want string
	}{
		{"title beats date", Filter{Title: "pt", Date: "2026-09-01"}, "title ILIKE"},
		{"date beats range", Filter{Date: "2026-09-01", DateFrom: "2026-09-01"}, "date = $1"},
		{"range beats status", Filter{DateFrom: "2026-09-01", Status: "scheduled"}, "date >= $1"},
		{"status alone", Filter{Status: "scheduled"}, "status ILIKE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := query.New("appointment", apptCols)
			applyFilter(b, tc.f)
			if sql := b.SQL(); !strings.Contains(sql, tc.want) {
				t.Errorf("sql = %q, want it to contain %q", sql, tc.want)
			}
		})
	}
}

func TestApplyFilter_RangeBindsBothBounds(t *testing.T) {
	b := query.New("appointment", apptCols)
	applyFilter(b, Filter{DateFrom: "2026-09-01", DateTo: "2026-09-30"})

	sql := b.SQL()
	if !strings.Contains(sql, "date >= $1") || !strings.Contains(sql, "date <= $2") {
		t.Errorf("expected an inclusive range, sql: %q", sql)
	}
	if len(b.Args()) != 2 {
		t.Errorf("expected 2 bound args, got %v", b.Args())
	}
}

func TestApplyFilter_ValuesAreBoundNotInterpolated(t *testing.T) {
	b := query.New("appointment", apptCols)
	applyFilter(b, Filter{Title: "x'; DROP TABLE appointment;--"})

	if sql := b.SQL(); strings.Contains(sql, "DROP TABLE") {
		t.Errorf("filter value leaked into SQL text: %q", sql)
	}
	if len(b.Args()) != 1 {
		t.Errorf("expected value passed as bound arg, got %v", b.Args())
	}
}

func TestApplyFilter_StatusMatchesSubstring(t *testing.T) {
	b := query.New("appointment", apptCols)
	applyFilter(b, Filter{Status: "sched"})

	if sql := b.SQL(); !strings.Contains(sql, "status ILIKE $1") {
		t.Errorf("expected a substring predicate on status, sql: %q", sql)
	}
	args := b.Args()
	if len(args) != 1 || args[0] != "%sched%" {
		t.Errorf("expected a wrapped wildcard arg, got %v", args)
	}
}

func TestApplyFilter_ListOrdersByRecency(t *testing.T) {
	b := query.New("appointment", apptCols)
	applyFilter(b, Filter{Status: "scheduled"})
	b.OrderBy("updated_at DESC")

	if sql := b.SQL(); !strings.HasSuffix(sql, "ORDER BY updated_at DESC") {
		t.Errorf("expected recency ordering, sql: %q", sql)
	}
}
