// Command seed manages demo accounts: it creates (or recreates) a user with
// known credentials, or lists the accounts already registered.
//
//	seed -email demo@example.com -password password123 -name "Demo User"
//	seed -list
package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/service"
	mongodb "github.com/taskboard/task-tracker/internal/infrastructure/db/mongo"
	"github.com/taskboard/task-tracker/internal/pkg/config"
	"github.com/taskboard/task-tracker/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		list     = flag.Bool("list", false, "list existing users instead of seeding")
		name     = flag.String("name", "Demo User", "display name for the seeded user")
		email    = flag.String("email", "demo@example.com", "email for the seeded user")
		password = flag.String("password", "password123", "password for the seeded user")
	)
	flag.Parse()

	log := logger.Init(logger.Options{Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := mongodb.NewUserRepository(db)

	if *list {
		users, err := repo.List(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to list users")
		}
		if len(users) == 0 {
			log.Info().Msg("no users found, sign up first or seed one")
			return
		}
		for _, u := range users {
			log.Info().Str("name", u.Name).Str("email", u.Email).Msg("user")
		}
		return
	}

	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	normalized := service.NormalizeEmail(*email)

	// Recreate from scratch so the seeded credentials always work.
	if existing, err := repo.FindByEmail(ctx, normalized); err == nil {
		if err := repo.Delete(ctx, existing.ID); err != nil {
			log.Fatal().Err(err).Msg("failed to remove previous seed user")
		}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("failed to look up seed user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	now := time.Now().UTC()
	user, err := repo.Create(ctx, &domain.User{
		Name:         *name,
		Email:        normalized,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create seed user")
	}

	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("demo user created")
}
