package facility

import "context"

type Repository interface {
	// GetByID returns (nil, nil) when no facility has the given id.
	GetByID(ctx context.Context, id int64) (*Facility, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*Facility, int, error)
}
