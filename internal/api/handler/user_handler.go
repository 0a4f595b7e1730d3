package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

// UserHandler handles the /api/users/me profile surface.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type profileResponse struct {
	Success bool         `json:"success"`
	Data    *domain.User `json:"data"`
}

// Me handles GET /api/users/me.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{Success: true, Data: user})
}

// UpdateMe handles PUT /api/users/me. Only name and email may change;
// password changes are not part of the profile surface.
//
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserFields{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{Success: true, Data: user})
}

// DeleteMe handles DELETE /api/users/me. The account record goes away
// synchronously; the user's tasks are purged by the background pipeline.
//
// @Summary      Delete the authenticated user's account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/users/me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	id, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}
