package repositories

import (
	"context"
	"errors"

	domain "github.com/eduaccess/api/internal/domain"
)

var (
	// ErrContentNotFound indicates the catalog holds no item with the given id.
	ErrContentNotFound = errors.New("catalog repository: content item not found")
	// ErrRegionNotFound indicates the registry holds no profile for the region.
	ErrRegionNotFound = errors.New("region repository: profile not found")
)

// CatalogRepository stores the ordered collection of content items. The
// repository preserves insertion order; it performs no filtering, ranking
// or deduplication of its own.
type CatalogRepository interface {
	// List returns a snapshot of all items in insertion order.
	List(ctx context.Context) ([]domain.ContentItem, error)
	// Get returns the item with the given id or ErrContentNotFound.
	Get(ctx context.Context, id int64) (domain.ContentItem, error)
	// Append assigns the next sequential id and appends the item.
	Append(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error)
	// Categories returns the distinct category labels in first-seen order.
	Categories(ctx context.Context) ([]string, error)
}

// RegionRepository stores region profiles keyed by region identifier.
// Missing-profile fallback is the region service's concern, not the store's.
type RegionRepository interface {
	// Get returns the profile for the region or ErrRegionNotFound.
	Get(ctx context.Context, regionID string) (domain.RegionProfile, error)
	// Regions returns all known region identifiers.
	Regions(ctx context.Context) ([]string, error)
}
