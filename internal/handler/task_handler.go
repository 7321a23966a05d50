package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskpad/internal/apperror"
	"taskpad/internal/auth"
	"taskpad/internal/model"
	"taskpad/internal/service"
)

// TaskHandler handles task endpoints. All routes sit behind the JWT
// middleware, so the caller identity is always available from the context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Status      model.Status    `json:"status" validate:"omitempty,oneof=new in-progress done"`
	DueDate     *model.DateTime `json:"dueDate"`
	Reminder    *model.DateTime `json:"reminder"`
}

// UpdateTaskRequest represents a partial task update. Absent keys leave the
// stored field untouched; explicit null or an empty string clears the
// optional fields.
type UpdateTaskRequest struct {
	Title       model.Optional[string]         `json:"title"`
	Description model.Optional[string]         `json:"description"`
	Status      model.Optional[model.Status]   `json:"status"`
	DueDate     model.Optional[model.DateTime] `json:"dueDate"`
	Reminder    model.Optional[model.DateTime] `json:"reminder"`
}

func callerID(c echo.Context) (string, error) {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return "", apperror.NewAuthentication("not authenticated", nil)
	}
	return claims.UserID, nil
}

// List godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TaskListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Tasks:   tasks,
	})
}

// GetByID godoc
// @Summary Get one task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetByID(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetByID(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TaskResponse{Success: true, Task: *task})
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task fields"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperror.NewValidation(err.Error())
	}

	task, err := h.taskService.Create(c.Request().Context(), caller, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Reminder:    req.Reminder,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, TaskResponse{Success: true, Task: *task})
}

// Update godoc
// @Summary Partially update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} TaskResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	patch := service.TaskPatch{
		Description: req.Description,
		DueDate:     req.DueDate,
		Reminder:    req.Reminder,
	}
	// a null title or status reads the same as not sending the key
	if req.Title.Set && req.Title.Value != nil {
		patch.Title = req.Title.Value
	}
	if req.Status.Set && req.Status.Value != nil {
		patch.Status = req.Status.Value
	}

	task, err := h.taskService.Update(c.Request().Context(), caller, c.Param("id"), patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TaskResponse{Success: true, Task: *task})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "task deleted successfully",
	})
}

// ListByStatus godoc
// @Summary List the caller's tasks with an exact status
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status path string true "Task status"
// @Success 200 {object} TaskListResponse
// @Failure 401 {object} ErrorResponse
// @Router /tasks/status/{status} [get]
func (h *TaskHandler) ListByStatus(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByStatus(c.Request().Context(), caller, model.Status(c.Param("status")))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Tasks:   tasks,
	})
}

// ListByDate godoc
// @Summary List the caller's tasks due on a calendar day
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param date path string true "Due date (YYYY-MM-DD)"
// @Success 200 {object} TaskListResponse
// @Failure 401 {object} ErrorResponse
// @Router /tasks/date/{date} [get]
func (h *TaskHandler) ListByDate(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByDate(c.Request().Context(), caller, c.Param("date"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Tasks:   tasks,
	})
}
