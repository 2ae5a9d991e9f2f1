package identity

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	patients  PatientRepository
	providers ProviderRepository
}

func NewService(patients PatientRepository, providers ProviderRepository) *Service {
	return &Service{patients: patients, providers: providers}
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByUUID(ctx, id)
}

// ResolvePatient maps a patient UUID to the internal row id. Unknown UUIDs
// report found=false rather than an error.
func (s *Service) ResolvePatient(ctx context.Context, id uuid.UUID) (int64, bool, error) {
	return s.patients.ResolveUUID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) GetProvider(ctx context.Context, id int64) (*Provider, error) {
	return s.providers.GetByID(ctx, id)
}

func (s *Service) ProviderExists(ctx context.Context, id int64) (bool, error) {
	return s.providers.Exists(ctx, id)
}

func (s *Service) ListProviders(ctx context.Context, limit, offset int) ([]*Provider, int, error) {
	return s.providers.List(ctx, limit, offset)
}
