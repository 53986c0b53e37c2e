// Command create-admin provisions an admin account out of band. The
// password is read from ADMIN_PASSWORD so it stays out of shell history.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/manosay/manosay/backend/go-services/internal/accounts"
	"github.com/manosay/manosay/backend/go-services/internal/config"
	"github.com/manosay/manosay/backend/go-services/internal/credentials"
	"github.com/manosay/manosay/backend/go-services/internal/database"
	"github.com/manosay/manosay/backend/go-services/internal/models"
	"github.com/manosay/manosay/backend/go-services/pkg/logger"
)

func main() {
	name := flag.String("name", "Admin", "display name")
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email (ADMIN_EMAIL)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	password := os.Getenv("ADMIN_PASSWORD")
	if *email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "usage: ADMIN_PASSWORD=... create-admin -email admin@example.com [-name Admin]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store := database.New(database.Options{
		URI:      cfg.MongoDB.URI,
		Database: cfg.MongoDB.Database,
		Timeout:  cfg.MongoDB.Timeout,
		Policy:   database.RetryPolicy{MaxRetries: cfg.MongoDB.MaxRetries, BaseBackoff: cfg.MongoDB.RetryBackoff},
	})
	if err := store.Connect(ctx); err != nil {
		logger.Fatalf("document store unavailable: %v", err)
	}
	defer func() { _ = store.Disconnect(context.Background()) }()
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warnf("ensure indexes: %v", err)
	}

	svc := accounts.NewService(accounts.NewMongoRepository(store), credentials.NewHasher(credentials.DefaultCost, 0))
	a, created, err := createAdmin(ctx, svc, *name, *email, password)
	if err != nil {
		logger.Errorf("create admin: %v", err)
		_ = store.Disconnect(context.Background())
		os.Exit(1)
	}
	if !created {
		fmt.Printf("Admin account already exists: %s\n", a.Email)
		return
	}
	fmt.Printf("Admin account created: %s (id %s)\n", a.Email, a.ID.Hex())
}

// createAdmin registers an admin. An existing account with the same email
// is left untouched and reported with created=false.
func createAdmin(ctx context.Context, svc *accounts.Service, name, email, password string) (*models.Account, bool, error) {
	a, err := svc.Register(ctx, name, email, password, models.RoleAdmin)
	if errors.Is(err, accounts.ErrEmailTaken) {
		return &models.Account{Email: models.NormalizeEmail(email)}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}
