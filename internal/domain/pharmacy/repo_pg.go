package pharmacy

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrkit/scheduling/internal/platform/query"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

// applyFilters appends every supplied filter as a bound predicate. Absent
// filters never reach the SQL text.
func applyFilters(b *query.Builder, f Filters) {
	b.EqBool("in_network", f.Coverage)
	b.Eq("state", f.State)
	b.Eq("city", f.City)
	b.EqBool("open_24h", f.FullDay)
	b.EqBool("directory_member", f.MemberOnly)
	b.Eq("zip", f.Zip)
	b.EqBool("test_flag", f.TestPharmacy)
}

func (r *repoPG) SearchCities(ctx context.Context, f Filters, limit int) ([]string, error) {
	b := query.New("pharmacy", "DISTINCT city")
	b.Prefix("city", f.Term)
	applyFilters(b, f)
	b.OrderBy("city ASC")
	b.Limit(limit)

	rows, err := r.pool.Query(ctx, b.SQL(), b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (r *repoPG) Search(ctx context.Context, f Filters) ([]Entry, error) {
	b := query.New("pharmacy", "name, ncpdp")
	b.Contains("name", f.Term)
	applyFilters(b, f)
	b.OrderBy("name ASC")

	rows, err := r.pool.Query(ctx, b.SQL(), b.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.NCPDP); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
