package accounts

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// MemoryRepository is an in-memory Repository for unit tests. It enforces
// email uniqueness like the Mongo index.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[primitive.ObjectID]*models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[primitive.ObjectID]*models.Account)}
}

func (m *MemoryRepository) Insert(ctx context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == a.Email {
			return ErrEmailTaken
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}
