package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-tracker/internal/api/metrics"
	"github.com/taskboard/task-tracker/internal/token"
)

// ContextKeyUserID is the echo context key under which Auth stores the
// authenticated user id.
const ContextKeyUserID = "user_id"

// TokenVerifier validates a bearer token and returns the subject it asserts.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// Auth extracts and verifies the Bearer token and injects the authenticated
// user id into the request context. Any extraction or verification failure
// ends the request with 401 before handler logic runs; the rejection reason
// is kept internal (logs, metrics) and never leaks to the client.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectedTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectedTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subjectID, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.AuthRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUserID, subjectID)
			return next(c)
		}
	}
}

// rejectReason maps verification errors to metric labels. The client sees a
// uniform 401 either way.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, token.ErrExpired):
		return "expired"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "invalid_signature"
	default:
		return "malformed_token"
	}
}
