package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-tracker/internal/token"
)

const testSecret = "test-secret"

func newAuthContext(t *testing.T, e *echo.Echo, header string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer(testSecret, time.Hour)
	signed, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := newAuthContext(t, e, "Bearer "+signed)

	called := false
	mw := Auth(issuer)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextKeyUserID) != "user-42" {
			t.Fatalf("user id not set, got %v", c.Get(ContextKeyUserID))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeCaseInsensitive(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer(testSecret, time.Hour)
	signed, _ := issuer.Issue("user-42")

	c, _ := newAuthContext(t, e, "bearer "+signed)

	mw := Auth(issuer)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)
	otherIssuer := token.NewIssuer("another-secret", time.Hour)

	otherSigned, _ := otherIssuer.Issue("user-42")

	expiredClaims := jwt.RegisteredClaims{
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expiredSigned, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "sometoken"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong secret", "Bearer " + otherSigned},
		{"expired", "Bearer " + expiredSigned},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c, rec := newAuthContext(t, e, tc.header)

			mw := Auth(issuer)
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
