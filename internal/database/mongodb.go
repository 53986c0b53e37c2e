package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection = "users"
	PostsCollection = "posts"
	LeadsCollection = "leads"
)

// Handle is the subset of *mongo.Client the store depends on.
type Handle interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

// Collections resolves collections on demand; *Store implements it.
// Repositories hold this instead of a *mongo.Collection so that use before
// Connect surfaces ErrNotInitialized.
type Collections interface {
	Collection(name string) (*mongo.Collection, error)
}

// Dialer builds a client for uri. It must not block past ctx.
type Dialer func(ctx context.Context, uri string, timeout time.Duration) (Handle, error)

// DialMongo is the production Dialer.
func DialMongo(ctx context.Context, uri string, timeout time.Duration) (Handle, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes backing email and slug uniqueness.
// Safe to run on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	db, err := s.Database()
	if err != nil {
		return err
	}
	unique := []struct {
		col, field, name string
	}{
		{UsersCollection, "email", "email_unique"},
		{PostsCollection, "slug", "slug_unique"},
	}
	for _, ix := range unique {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: ix.field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(ix.name),
		}
		if _, err := db.Collection(ix.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index %s.%s: %w", ix.col, ix.field, err)
		}
	}
	listing := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "published_date", Value: -1}},
		Options: options.Index().SetName("status_published"),
	}
	if _, err := db.Collection(PostsCollection).Indexes().CreateOne(ctx, listing); err != nil {
		return fmt.Errorf("create index posts.status_published: %w", err)
	}
	return nil
}

// RedactURI hides the password component of a connection string for logging.
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<unparseable uri>"
	}
	return u.Redacted()
}
