package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/platform/observability"
	"github.com/eduaccess/api/internal/repositories"
)

// RegionServiceDeps bundles constructor inputs for the region service.
type RegionServiceDeps struct {
	Regions repositories.RegionRepository
	Default domain.RegionProfile
}

type regionService struct {
	repo            repositories.RegionRepository
	fallbackProfile domain.RegionProfile
}

// ErrRegionRepositoryMissing indicates the repository dependency is absent.
var ErrRegionRepositoryMissing = errors.New("region service: region repository is not configured")

// NewRegionService constructs the region service with the supplied
// dependencies. The default profile is returned for every unknown region;
// its tier is forced to the lowest when left unset.
func NewRegionService(deps RegionServiceDeps) (RegionService, error) {
	if deps.Regions == nil {
		return nil, ErrRegionRepositoryMissing
	}
	fallback := deps.Default
	if fallback.Tier == "" {
		fallback.Tier = domain.TierLow
	}
	return &regionService{
		repo:            deps.Regions,
		fallbackProfile: fallback,
	}, nil
}

// Resolve is a total lookup: any region without a registered profile,
// including the empty region, resolves to the shared default profile.
func (s *regionService) Resolve(ctx context.Context, regionID string) domain.RegionProfile {
	regionID = strings.TrimSpace(regionID)
	if regionID == "" {
		return s.fallbackProfile
	}

	profile, err := s.repo.Get(ctx, regionID)
	if err != nil {
		if !errors.Is(err, repositories.ErrRegionNotFound) {
			observability.FromContext(ctx).Warn("region lookup failed; serving default profile",
				zap.String("region", observability.SanitizeRegion(regionID)),
				zap.Error(err),
			)
		}
		return s.fallbackProfile
	}
	return profile
}
