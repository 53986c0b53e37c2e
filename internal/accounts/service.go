package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/models"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service encapsulates account registration and login
type Service struct {
	repo   Repository
	hasher *credentials.Hasher
	now    func() time.Time
}

func NewService(r Repository, h *credentials.Hasher) *Service {
	return &Service{repo: r, hasher: h, now: time.Now}
}

// Register creates an account with a hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string, role models.Role) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.Invalid("name", "is required")
	}
	email = models.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, models.Invalid("email", "is not a valid address")
	}
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}
	a := &models.Account{
		Email:     email,
		Name:      name,
		Password:  hash,
		Role:      models.ParseRole(string(role)),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate returns the account whose password matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	a, err := s.repo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if a == nil || !s.hasher.Verify(ctx, password, a.Password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// GetByID looks up an account by hex id. Malformed or unknown ids return nil, nil.
func (s *Service) GetByID(ctx context.Context, id string) (*models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.repo.GetByID(ctx, oid)
}
