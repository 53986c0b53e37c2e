package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
	"github.com/manosay/manosay/backend/go-services/pkg/metrics"
)

const (
	// MaxSlugSuffix is the highest -n suffix tried before giving up.
	MaxSlugSuffix = 10
	ExcerptLength = 160
	RecentCount   = 3
)

// ErrSlugConflict is returned when the base slug and every suffix are taken.
var ErrSlugConflict = errors.New("could not generate a unique slug")

// CreateInput is the admin form for a new post.
type CreateInput struct {
	Title   string
	Content string
	Slug    string
	Image   string
	Tags    string
	Format  string
	Status  string
}

// Service encapsulates blog post creation and the public read side
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// Create stores a post authored by author. The stored slug is the requested
// slug (or one derived from the title), suffixed with -1..-10 on collision.
func (s *Service) Create(ctx context.Context, in CreateInput, author *models.Account) (*models.Post, error) {
	if author == nil {
		return nil, errors.New("create post: missing author")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.Invalid("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.Invalid("content", "is required")
	}

	base := Slugify(in.Slug)
	if base == "" {
		base = Slugify(title)
	}
	if base == "" {
		return nil, models.Invalid("slug", "cannot be derived from the title")
	}

	name := author.Name
	if name == "" {
		name = author.Email
	}
	p := &models.Post{
		Title:         title,
		Content:       in.Content,
		Excerpt:       Excerpt(in.Content, ExcerptLength),
		Format:        normalizeFormat(in.Format),
		Author:        name,
		AuthorID:      author.ID,
		Image:         strings.TrimSpace(in.Image),
		PublishedDate: s.now().UTC(),
		Status:        normalizeStatus(in.Status),
		Tags:          ParseTags(in.Tags),
	}

	for n := 0; n <= MaxSlugSuffix; n++ {
		p.Slug = base
		if n > 0 {
			p.Slug = fmt.Sprintf("%s-%d", base, n)
		}
		err := s.repo.Insert(ctx, p)
		if err == nil {
			metrics.PostsCreated.Inc()
			logger.Infof("admin %s created post %q (%s)", author.Email, p.Title, p.Slug)
			return p, nil
		}
		if !errors.Is(err, ErrDuplicateSlug) {
			return nil, err
		}
		logger.Infof("slug %q taken, trying next suffix", p.Slug)
	}
	logger.Warnf("could not generate unique slug for %q after %d suffixes", base, MaxSlugSuffix)
	return nil, ErrSlugConflict
}

// ListPublished returns every published post, newest first.
func (s *Service) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.repo.ListPublished(ctx, 0)
}

// Recent returns the n newest published posts.
func (s *Service) Recent(ctx context.Context, n int) ([]*models.Post, error) {
	if n <= 0 {
		n = RecentCount
	}
	return s.repo.ListPublished(ctx, int64(n))
}

// GetPublished returns the published post with slug, or nil, nil.
func (s *Service) GetPublished(ctx context.Context, slug string) (*models.Post, error) {
	if slug == "" {
		return nil, nil
	}
	return s.repo.GetPublishedBySlug(ctx, slug)
}

// ListByAuthor returns the posts written by an account, newest first.
func (s *Service) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Post, error) {
	return s.repo.ListByAuthor(ctx, authorID)
}

// Excerpt returns the first max characters of the plain text of content,
// followed by "..." when truncated.
func Excerpt(content string, max int) string {
	text := strings.Join(strings.Fields(PlainText(content)), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	r := []rune(text)
	return string(r[:max]) + "..."
}

// ParseTags splits a comma separated list, trimming and dropping empties.
func ParseTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func normalizeFormat(f string) string {
	if strings.EqualFold(strings.TrimSpace(f), models.PostFormatMarkdown) {
		return models.PostFormatMarkdown
	}
	return models.PostFormatHTML
}

func normalizeStatus(st string) string {
	if strings.EqualFold(strings.TrimSpace(st), models.PostStatusDraft) {
		return models.PostStatusDraft
	}
	return models.PostStatusPublished
}
