package services

import (
	"context"
	"strings"
	"testing"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/repositories"
)

type stubCatalogRepository struct {
	listFunc       func(ctx context.Context) ([]domain.ContentItem, error)
	getFunc        func(ctx context.Context, id int64) (domain.ContentItem, error)
	appendFunc     func(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error)
	categoriesFunc func(ctx context.Context) ([]string, error)
}

func (s *stubCatalogRepository) List(ctx context.Context) ([]domain.ContentItem, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx)
	}
	return nil, nil
}

func (s *stubCatalogRepository) Get(ctx context.Context, id int64) (domain.ContentItem, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, id)
	}
	return domain.ContentItem{}, repositories.ErrContentNotFound
}

func (s *stubCatalogRepository) Append(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	if s.appendFunc != nil {
		return s.appendFunc(ctx, item)
	}
	item.ID = 99
	return item, nil
}

func (s *stubCatalogRepository) Categories(ctx context.Context) ([]string, error) {
	if s.categoriesFunc != nil {
		return s.categoriesFunc(ctx)
	}
	return nil, nil
}

func regionScenarioItems() []domain.ContentItem {
	return []domain.ContentItem{
		{ID: 1, Title: "Programming Basics", Regions: []string{"India"}},
		{ID: 2, Title: "Mathematics Fundamentals"},
		{ID: 3, Title: "Advanced VPN Configuration", Regions: []string{"Iran"}},
	}
}

func TestFilterRegionInclusive(t *testing.T) {
	got := Filter(regionScenarioItems(), ContentFilter{Region: "India"})

	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected items 1 and 2, got %d and %d", got[0].ID, got[1].ID)
	}
}

func TestFilterIdentityPassThrough(t *testing.T) {
	items := regionScenarioItems()
	got := Filter(items, ContentFilter{Search: "", Kind: "all", Category: "all"})

	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for i := range items {
		if got[i].ID != items[i].ID {
			t.Fatalf("item order changed at position %d", i)
		}
	}
}

func TestFilterSearchCaseInsensitiveOverTitleAndDescription(t *testing.T) {
	items := []domain.ContentItem{
		{ID: 1, Title: "VPN Setup Guide", Description: "stay safe"},
		{ID: 2, Title: "Health Basics", Description: "using VPNs safely"},
		{ID: 3, Title: "Mathematics", Description: "algebra"},
	}
	got := Filter(items, ContentFilter{Search: "vpn"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestFilterKindAndCategoryAxes(t *testing.T) {
	items := []domain.ContentItem{
		{ID: 1, Kind: domain.KindVideo, Category: "Language"},
		{ID: 2, Kind: domain.KindDocument, Category: "Language"},
		{ID: 3, Kind: domain.KindVideo, Category: "Health"},
	}
	got := Filter(items, ContentFilter{Kind: "video", Category: "Language"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestRankRegionMatchesFirstThenPriority(t *testing.T) {
	items := []domain.ContentItem{
		{ID: 1, Regions: nil},
		{ID: 2, Regions: []string{"Iran"}},
		{ID: 3, Regions: []string{"India"}},
		{ID: 4, Regions: nil},
	}
	got := Rank(items, "India")

	want := []int64{3, 2, 1, 4}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("expected order %v, got %v at position %d", want, got, i)
		}
	}
}

func TestRankIsStable(t *testing.T) {
	items := []domain.ContentItem{
		{ID: 1, Regions: []string{"India"}},
		{ID: 2, Regions: []string{"India", "Sudan"}},
		{ID: 3},
		{ID: 4},
	}
	got := Rank(items, "India")

	want := []int64{1, 2, 3, 4}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("ties were reordered: expected %v, got ids %v", want, got)
		}
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	if got := Rank(nil, "India"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestCatalogServiceListFilterAndRankScenario(t *testing.T) {
	repo := &stubCatalogRepository{
		listFunc: func(context.Context) ([]domain.ContentItem, error) {
			return regionScenarioItems(), nil
		},
	}
	svc, err := NewCatalogService(CatalogServiceDeps{Catalog: repo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.List(context.Background(), ContentFilter{Region: "India"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected ranked items [1 2], got %+v", got)
	}
}

func TestCatalogServiceAddSanitisesAndCoerces(t *testing.T) {
	var appended domain.ContentItem
	repo := &stubCatalogRepository{
		appendFunc: func(_ context.Context, item domain.ContentItem) (domain.ContentItem, error) {
			appended = item
			item.ID = 13
			return item, nil
		},
	}
	svc, err := NewCatalogService(CatalogServiceDeps{Catalog: repo})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := svc.Add(context.Background(), domain.NewContentItem{
		Title:       "  <script>alert(1)</script>Night School  ",
		Description: "Lessons <b>after dark</b>",
		Kind:        domain.ContentKind("hologram"),
		Price:       -500,
		Regions:     []string{" Cuba ", ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != 13 {
		t.Fatalf("expected assigned id 13, got %d", stored.ID)
	}
	if appended.Title != "Night School" {
		t.Fatalf("title not sanitised: %q", appended.Title)
	}
	if strings.Contains(appended.Description, "<b>") {
		t.Fatalf("description not sanitised: %q", appended.Description)
	}
	if appended.Price != 0 {
		t.Fatalf("negative price must coerce to 0, got %d", appended.Price)
	}
	if appended.Kind != domain.KindDocument {
		t.Fatalf("unknown kind must coerce to document, got %q", appended.Kind)
	}
	if len(appended.Regions) != 1 || appended.Regions[0] != "Cuba" {
		t.Fatalf("regions not normalised: %v", appended.Regions)
	}
}

func TestCatalogServiceAddRequiresTitle(t *testing.T) {
	svc, err := NewCatalogService(CatalogServiceDeps{Catalog: &stubCatalogRepository{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(context.Background(), domain.NewContentItem{Title: "<p></p>"}); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestDownloadManifest(t *testing.T) {
	item := domain.ContentItem{
		ID:          7,
		Title:       "Intro Guide",
		Description: "Free educational materials on human rights",
		Kind:        domain.KindDocument,
		Category:    "Education",
		SizeLabel:   "78 MB",
		Regions:     []string{"Syria", "Sudan"},
	}
	artifact := DownloadManifest(item)

	if artifact.Filename != "intro_guide.txt" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}
	if !strings.Contains(artifact.Body, "Intro Guide") {
		t.Fatal("manifest must contain the title verbatim")
	}
	if !strings.Contains(artifact.Body, "Free educational materials on human rights") {
		t.Fatal("manifest must contain the description verbatim")
	}
	if !strings.Contains(artifact.Body, "Syria, Sudan") {
		t.Fatal("manifest must list the region tags")
	}
}
