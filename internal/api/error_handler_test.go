package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-tracker/internal/core/domain"
)

func TestHTTPErrorHandler_DomainMappings(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"http error passthrough", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{"unexpected", errors.New("store exploded"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.wantMsg) {
				t.Fatalf("expected message %q in body %s", tc.wantMsg, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_HidesInternalDetail(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("dial tcp 10.0.0.5:27017: connection refused"), c)

	if strings.Contains(rec.Body.String(), "27017") {
		t.Fatalf("internal detail leaked to the client: %s", rec.Body.String())
	}
}
