package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/platform/observability"
	"github.com/eduaccess/api/internal/repositories"
)

// CatalogServiceDeps bundles constructor inputs for the catalog service.
type CatalogServiceDeps struct {
	Catalog repositories.CatalogRepository
}

type catalogService struct {
	repo      repositories.CatalogRepository
	sanitizer *bluemonday.Policy
}

var (
	// ErrCatalogRepositoryMissing indicates the repository dependency is absent.
	ErrCatalogRepositoryMissing = errors.New("catalog service: catalog repository is not configured")
	// ErrCatalogTitleRequired indicates an append without a usable title.
	ErrCatalogTitleRequired = errors.New("catalog service: title is required")
)

// NewCatalogService constructs the catalog service with the supplied
// dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Catalog == nil {
		return nil, ErrCatalogRepositoryMissing
	}
	return &catalogService{
		repo:      deps.Catalog,
		sanitizer: bluemonday.StrictPolicy(),
	}, nil
}

func (s *catalogService) List(ctx context.Context, filter ContentFilter) ([]domain.ContentItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: list: %w", err)
	}
	region := strings.TrimSpace(filter.Region)
	return Rank(Filter(items, filter), region), nil
}

func (s *catalogService) Get(ctx context.Context, id int64) (domain.ContentItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.ContentItem{}, err
	}
	return item, nil
}

func (s *catalogService) Add(ctx context.Context, input domain.NewContentItem) (domain.ContentItem, error) {
	item := domain.ContentItem{
		Title:       s.cleanText(input.Title),
		Description: s.cleanText(input.Description),
		Kind:        input.Kind,
		Category:    s.cleanText(input.Category),
		Price:       input.Price,
		Regions:     normalizeRegions(input.Regions),
		SizeLabel:   strings.TrimSpace(input.SizeLabel),
		Duration:    strings.TrimSpace(input.Duration),
	}
	if item.Title == "" {
		return domain.ContentItem{}, ErrCatalogTitleRequired
	}
	if !domain.KnownContentKind(item.Kind) {
		item.Kind = domain.KindDocument
	}
	// Lenient by design: malformed prices are coerced to free, not rejected.
	if item.Price < 0 {
		item.Price = 0
	}

	stored, err := s.repo.Append(ctx, item)
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("catalog service: add: %w", err)
	}
	observability.FromContext(ctx).Info("content item added",
		zap.Int64("item_id", stored.ID),
		zap.String("kind", string(stored.Kind)),
		zap.Int64("price", stored.Price),
	)
	return stored, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog service: categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) cleanText(value string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(value))
}

func normalizeRegions(regions []string) []string {
	if len(regions) == 0 {
		return nil
	}
	result := make([]string, 0, len(regions))
	for _, region := range regions {
		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		result = append(result, region)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Filter applies the query axes to the item sequence. The search term
// matches case-insensitively against title or description; kind and
// category axes are disabled by "all" or empty values. Region filtering is
// inclusive: an item survives when it declares the region, declares no
// regions at all, or no region was supplied. All active predicates are
// ANDed. Input order is preserved.
func Filter(items []domain.ContentItem, filter ContentFilter) []domain.ContentItem {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	kind := normalizeAxis(filter.Kind)
	category := normalizeAxis(filter.Category)
	region := strings.TrimSpace(filter.Region)

	result := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Title), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		if kind != "" && !strings.EqualFold(string(item.Kind), kind) {
			continue
		}
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if region != "" && len(item.Regions) > 0 && !item.InRegion(region) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Rank orders items by regional relevance without hiding general content:
// items declaring the active region first, then priority items (any
// declared regions), with input order preserved among equals. The sort is
// stable; ties are never reordered.
func Rank(items []domain.ContentItem, region string) []domain.ContentItem {
	ranked := make([]domain.ContentItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		iMatch := region != "" && ranked[i].InRegion(region)
		jMatch := region != "" && ranked[j].InRegion(region)
		if iMatch != jMatch {
			return iMatch
		}
		if ranked[i].Priority() != ranked[j].Priority() {
			return ranked[i].Priority()
		}
		return false
	})
	return ranked
}

func normalizeAxis(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, FilterAll) {
		return ""
	}
	return value
}
