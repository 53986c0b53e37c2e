package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"

	PostFormatHTML     = "html"
	PostFormatMarkdown = "markdown"
)

// Post is a blog article. Slug is unique across all posts.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Excerpt       string             `bson:"excerpt" json:"excerpt"`
	Content       string             `bson:"content" json:"content"`
	Format        string             `bson:"format,omitempty" json:"format,omitempty"`
	Author        string             `bson:"author" json:"author"`
	AuthorID      primitive.ObjectID `bson:"author_id,omitempty" json:"author_id,omitempty"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	PublishedDate time.Time          `bson:"published_date" json:"published_date"`
	Status        string             `bson:"status" json:"status"`
	Tags          []string           `bson:"tags" json:"tags"`
}

// Published reports whether the post is visible on the public blog.
func (p *Post) Published() bool {
	return p != nil && p.Status == PostStatusPublished
}
