package pharmacy

import (
	"context"
	"fmt"
)

// Search modes accepted by the directory endpoint. The legacy "drop" mode
// used a second, divergent WHERE-assembly path; here it shares the pharmacy
// path since the two only ever differed by accident.
const (
	ModeCity     = "weno_city"
	ModePharmacy = "weno_pharmacy"
	ModeDrop     = "weno_drop"
)

const cityLimit = 10

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search dispatches on the mode selector and returns either a list of city
// strings or a list of {name, ncpdp} entries.
func (s *Service) Search(ctx context.Context, mode string, f Filters) (interface{}, error) {
	switch mode {
	case ModeCity:
		cities, err := s.repo.SearchCities(ctx, f, cityLimit)
		if err != nil {
			return nil, err
		}
		if cities == nil {
			cities = []string{}
		}
		return cities, nil
	case ModePharmacy, ModeDrop:
		entries, err := s.repo.Search(ctx, f)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []Entry{}
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unknown search mode: %s", mode)
	}
}
