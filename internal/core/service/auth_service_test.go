package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
	"github.com/taskboard/task-tracker/internal/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = time.Now().Format("20060102") + "-" + string(rune('a'+r.nextID))
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, id string, fields ports.UpdateUserFields) (*domain.User, error) {
	for email, u := range r.users {
		if u.ID != id {
			continue
		}
		if fields.Email != nil && *fields.Email != email {
			if _, taken := r.users[*fields.Email]; taken {
				return nil, domain.ErrEmailTaken
			}
			delete(r.users, email)
			u.Email = *fields.Email
			r.users[u.Email] = u
		}
		if fields.Name != nil {
			u.Name = *fields.Name
		}
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newAuthService(repo ports.UserRepository) (*AuthService, *token.Issuer) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	return NewAuthService(repo, issuer), issuer
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newAuthService(repo)

	tkn, user, err := svc.Signup(context.Background(), "Jane", "jane@x.com", "secret1")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected created user with id, got %+v", user)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	subject, err := issuer.Verify(tkn)
	if err != nil {
		t.Fatalf("signup token invalid: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject %q does not match user id %q", subject, user.ID)
	}
}

func TestAuthService_Signup_HashesAreSalted(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	_, u1, err := svc.Signup(context.Background(), "A", "a@x.com", "same-password")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, u2, err := svc.Signup(context.Background(), "B", "b@x.com", "same-password")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u1.PasswordHash == u2.PasswordHash {
		t.Fatalf("identical passwords must produce different hashes")
	}
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), "Jane", "jane@x.com", "12345"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), "Jane", "jane@x.com", "secret1"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	_, _, err := svc.Signup(context.Background(), "Other Jane", "jane@x.com", "secret2")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// First account unaffected.
	if _, _, err := svc.Login(context.Background(), "jane@x.com", "secret1"); err != nil {
		t.Fatalf("original account can no longer log in: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, issuer := newAuthService(repo)

	_, created, err := svc.Signup(context.Background(), "Carol", "carol@x.com", "s3cret1")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	tkn, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	subject, err := issuer.Verify(tkn)
	if err != nil || subject != created.ID {
		t.Fatalf("login token invalid: subject=%q err=%v", subject, err)
	}
}

func TestAuthService_Login_EmailCaseInsensitive(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), "Dave", "Dave@X.com", "goodpass"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave@x.COM", "goodpass"); err != nil {
		t.Fatalf("case-variant login failed: %v", err)
	}
}

func TestAuthService_Login_NoEnumeration(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), "Eve", "eve@x.com", "goodpass"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, _, wrongPass := svc.Login(context.Background(), "eve@x.com", "badpass")
	_, _, unknown := svc.Login(context.Background(), "ghost@x.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
}
