package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

const dueDateLayout = "2006-01-02"

// TaskHandler handles HTTP requests for task operations. Every route is
// behind the Auth middleware; the owner id always comes from the verified
// token, never from the payload.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

type taskResponse struct {
	Success bool         `json:"success"`
	Data    *domain.Task `json:"data"`
}

type taskListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []domain.Task `json:"data"`
}

// List handles GET /api/tasks with optional status filter and sort key.
//
// @Summary      List the caller's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (pending, in-progress, completed)"
// @Param        sort    query     string  false  "Sort key, '-' prefix for descending (e.g. -due_date)"
// @Success      200     {object}  taskListResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	filter, err := parseTaskFilter(c.QueryParam("status"), c.QueryParam("sort"))
	if err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), ownerID, filter)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	return c.JSON(http.StatusOK, taskListResponse{Success: true, Count: len(tasks), Data: tasks})
}

// Create handles POST /api/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	}
	if req.DueDate != "" {
		input.DueDate, _ = time.Parse(dueDateLayout, req.DueDate)
	}

	task, err := h.service.Create(c.Request().Context(), ownerID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, taskResponse{Success: true, Data: task})
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200 {object}  taskResponse
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskResponse{Success: true, Data: task})
}

// Update handles PUT /api/tasks/:id with a partial payload.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := ports.UpdateTaskFields{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.DueDate != nil {
		due, _ := time.Parse(dueDateLayout, *req.DueDate)
		fields.DueDate = &due
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		fields.Status = &status
	}

	task, err := h.service.Update(c.Request().Context(), ownerID, c.Param("id"), fields)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, taskResponse{Success: true, Data: task})
}

// Delete handles DELETE /api/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200 {object}  map[string]any
// @Failure      403 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	ownerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}

// parseTaskFilter translates the status and sort query parameters into the
// enumerated filter struct. Unrecognized values are rejected here so nothing
// unexpected ever reaches the store query.
func parseTaskFilter(statusParam, sortParam string) (ports.TaskFilter, error) {
	var filter ports.TaskFilter

	if statusParam != "" {
		status := domain.TaskStatus(statusParam)
		if !status.Valid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "unknown status filter")
		}
		filter.Status = status
	}

	// Default listing: newest first.
	filter.SortKey = ports.SortByCreatedAt
	filter.SortDescending = true

	if sortParam != "" {
		key := sortParam
		descending := false
		if strings.HasPrefix(key, "-") {
			key = strings.TrimPrefix(key, "-")
			descending = true
		}
		switch key {
		case ports.SortByCreatedAt, ports.SortByDueDate, ports.SortByTitle, ports.SortByStatus:
		default:
			return filter, echo.NewHTTPError(http.StatusBadRequest, "unknown sort key")
		}
		filter.SortKey = key
		filter.SortDescending = descending
	}

	return filter, nil
}
