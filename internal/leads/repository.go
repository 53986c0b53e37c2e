package leads

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manosay/manosay/backend/go-services/internal/database"
	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// Repository persists leads. Leads are append-only.
type Repository interface {
	Insert(ctx context.Context, l *models.Lead) error
}

// MongoRepository implements Repository on the leads collection
type MongoRepository struct {
	cols database.Collections
}

func NewMongoRepository(cols database.Collections) *MongoRepository {
	return &MongoRepository{cols: cols}
}

func (r *MongoRepository) Insert(ctx context.Context, l *models.Lead) error {
	col, err := r.cols.Collection(database.LeadsCollection)
	if err != nil {
		return err
	}
	res, err := col.InsertOne(ctx, l)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

// MemoryRepository is an in-memory Repository for unit tests.
type MemoryRepository struct {
	mu    sync.Mutex
	Leads []models.Lead
}

func (m *MemoryRepository) Insert(ctx context.Context, l *models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = primitive.NewObjectID()
	m.Leads = append(m.Leads, *l)
	return nil
}

// All returns a copy of the stored leads.
func (m *MemoryRepository) All() []models.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Lead(nil), m.Leads...)
}
