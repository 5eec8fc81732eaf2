package memory

import (
	"context"
	"sync"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/repositories"
)

// RegionStore is a seeded in-memory region profile adapter. Profiles are
// read-only after construction; the mutex guards against future writers.
type RegionStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.RegionProfile
	order    []string
}

// NewRegionStore seeds the store with the injected profiles.
func NewRegionStore(seed []domain.RegionProfile) *RegionStore {
	profiles := make(map[string]domain.RegionProfile, len(seed))
	order := make([]string, 0, len(seed))
	for _, profile := range seed {
		if _, ok := profiles[profile.RegionID]; !ok {
			order = append(order, profile.RegionID)
		}
		profiles[profile.RegionID] = profile
	}
	return &RegionStore{
		profiles: profiles,
		order:    order,
	}
}

// Get returns the profile for the region.
func (s *RegionStore) Get(_ context.Context, regionID string) (domain.RegionProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[regionID]
	if !ok {
		return domain.RegionProfile{}, repositories.ErrRegionNotFound
	}
	return profile, nil
}

// Regions returns all known region identifiers in seed order.
func (s *RegionStore) Regions(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	regions := make([]string, len(s.order))
	copy(regions, s.order)
	return regions, nil
}

var _ repositories.RegionRepository = (*RegionStore)(nil)
