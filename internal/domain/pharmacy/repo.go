package pharmacy

import "context"

type Repository interface {
	// SearchCities returns up to limit distinct city names matching the term
	// prefix and the remaining filters.
	SearchCities(ctx context.Context, f Filters, limit int) ([]string, error)
	// Search returns {name, ncpdp} entries for every pharmacy matching the
	// filters, ordered by business name ascending. Unbounded.
	Search(ctx context.Context, f Filters) ([]Entry, error)
}
