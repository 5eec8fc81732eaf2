package memory

import (
	"context"
	"sync"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/repositories"
)

// CatalogStore is a seeded in-memory catalog adapter. The system defines no
// durable persistence; the store exists so tests and the runtime share one
// repository implementation behind the same interface.
type CatalogStore struct {
	mu     sync.RWMutex
	items  []domain.ContentItem
	nextID int64
}

// NewCatalogStore seeds the store with the injected dataset. Seed ids are
// trusted as caller-guaranteed unique; the sequence continues past the
// highest seeded id.
func NewCatalogStore(seed []domain.ContentItem) *CatalogStore {
	items := make([]domain.ContentItem, len(seed))
	copy(items, seed)

	var maxID int64
	for _, item := range items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return &CatalogStore{
		items:  items,
		nextID: maxID + 1,
	}
}

// List returns a snapshot of all items in insertion order.
func (s *CatalogStore) List(_ context.Context) ([]domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.ContentItem, len(s.items))
	copy(snapshot, s.items)
	return snapshot, nil
}

// Get returns the item with the given id.
func (s *CatalogStore) Get(_ context.Context, id int64) (domain.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.ContentItem{}, repositories.ErrContentNotFound
}

// Append assigns the next sequential id and appends the item to the end of
// the collection.
func (s *CatalogStore) Append(_ context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID
	s.nextID++
	s.items = append(s.items, item)
	return item, nil
}

// Categories returns the distinct category labels in first-seen order.
func (s *CatalogStore) Categories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.items))
	categories := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if item.Category == "" {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories, nil
}

var _ repositories.CatalogRepository = (*CatalogStore)(nil)
