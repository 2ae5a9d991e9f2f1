package identity

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	// GetByUUID returns (nil, nil) when no patient has the given UUID.
	GetByUUID(ctx context.Context, id uuid.UUID) (*Patient, error)
	// ResolveUUID maps a patient UUID to its internal row id. An unknown UUID
	// is not an error: found is false and id is zero.
	ResolveUUID(ctx context.Context, id uuid.UUID) (int64, bool, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

type ProviderRepository interface {
	// GetByID returns (nil, nil) when no provider has the given id.
	GetByID(ctx context.Context, id int64) (*Provider, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*Provider, int, error)
}
