package posts

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// MemoryRepository is an in-memory Repository for unit tests. Slug
// uniqueness is checked under the lock, like the store's unique index.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*models.Post // by slug
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*models.Post)}
}

func (m *MemoryRepository) Insert(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.Slug]; ok {
		return ErrDuplicateSlug
	}
	p.ID = primitive.NewObjectID()
	cp := *p
	m.store[p.Slug] = &cp
	return nil
}

func (m *MemoryRepository) ListPublished(ctx context.Context, limit int64) ([]*models.Post, error) {
	out := m.filter(func(p *models.Post) bool { return p.Published() })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[slug]; ok && p.Published() {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *MemoryRepository) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Post, error) {
	return m.filter(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

// Slugs returns every stored slug, sorted.
func (m *MemoryRepository) Slugs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.store))
	for s := range m.store {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (m *MemoryRepository) filter(keep func(*models.Post) bool) []*models.Post {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*models.Post{}
	for _, p := range m.store {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedDate.After(out[j].PublishedDate)
	})
	return out
}
