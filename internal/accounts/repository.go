package accounts

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/manosay/manosay/backend/go-services/internal/database"
	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// ErrEmailTaken is returned when the unique email index rejects an insert.
var ErrEmailTaken = errors.New("email already registered")

// Repository defines persistence operations for accounts
type Repository interface {
	Insert(ctx context.Context, a *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
}

// MongoRepository implements Repository on the users collection
type MongoRepository struct {
	cols database.Collections
}

func NewMongoRepository(cols database.Collections) *MongoRepository {
	return &MongoRepository{cols: cols}
}

func (r *MongoRepository) col() (*mongo.Collection, error) {
	return r.cols.Collection(database.UsersCollection)
}

func (r *MongoRepository) Insert(ctx context.Context, a *models.Account) error {
	col, err := r.col()
	if err != nil {
		return err
	}
	res, err := col.InsertOne(ctx, a)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	col, err := r.col()
	if err != nil {
		return nil, err
	}
	var a models.Account
	if err := col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &a, nil
}
