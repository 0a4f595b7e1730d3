package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-tracker/internal/api/middleware"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. An empty id means the middleware did not run on this route,
// which is a wiring bug; fail closed with 401 rather than proceed without
// an identity.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextKeyUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
