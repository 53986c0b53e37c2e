package posts

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/manosay/manosay/backend/go-services/internal/database"
	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// ErrDuplicateSlug is returned by Insert when the slug index rejects the post.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Repository defines persistence operations for posts
type Repository interface {
	Insert(ctx context.Context, p *models.Post) error
	// ListPublished returns published posts newest first; limit <= 0 means all.
	ListPublished(ctx context.Context, limit int64) ([]*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Post, error)
}

// MongoRepository implements Repository on the posts collection
type MongoRepository struct {
	cols database.Collections
}

func NewMongoRepository(cols database.Collections) *MongoRepository {
	return &MongoRepository{cols: cols}
}

func (r *MongoRepository) col() (*mongo.Collection, error) {
	return r.cols.Collection(database.PostsCollection)
}

func (r *MongoRepository) Insert(ctx context.Context, p *models.Post) error {
	col, err := r.col()
	if err != nil {
		return err
	}
	// a retry after a duplicate must not reuse an id the driver assigned
	p.ID = primitive.NilObjectID
	res, err := col.InsertOne(ctx, p)
	if err != nil {
		if database.IsDuplicateKey(err) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *MongoRepository) ListPublished(ctx context.Context, limit int64) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"status": models.PostStatusPublished}, opts)
}

func (r *MongoRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	col, err := r.col()
	if err != nil {
		return nil, err
	}
	var p models.Post
	err = col.FindOne(ctx, bson.M{"slug": slug, "status": models.PostStatusPublished}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return &p, nil
}

func (r *MongoRepository) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_date", Value: -1}})
	return r.find(ctx, bson.M{"author_id": authorID}, opts)
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Post, error) {
	col, err := r.col()
	if err != nil {
		return nil, err
	}
	cur, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)
	out := []*models.Post{}
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		out = append(out, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}
