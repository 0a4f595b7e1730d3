package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/task-tracker/internal/api/metrics"
	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
	"github.com/taskboard/task-tracker/internal/token"
)

const minPasswordLength = 6

// AuthService implements signup and login on top of the user repository and
// the token issuer.
type AuthService struct {
	repo   ports.UserRepository
	issuer *token.Issuer
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Signup creates an account and returns a freshly minted token for it.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || len(password) < minPasswordLength {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.issuer.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.SignupsTotal.Inc()
	return tkn, created, nil
}

// Login verifies the credentials and mints a token. Unknown email and wrong
// password both come back as domain.ErrInvalidCredentials so the response
// never distinguishes the two.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tkn, user, nil
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive regardless of how the address was typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
