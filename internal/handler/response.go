package handler

import "taskpad/internal/model"

// ErrorResponse is the uniform failure body for every error status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse is returned by registration, login and profile lookups.
type AuthResponse struct {
	Success bool             `json:"success"`
	User    model.PublicUser `json:"user"`
	Token   string           `json:"token,omitempty"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Success bool       `json:"success"`
	Task    model.Task `json:"task"`
}

// TaskListResponse wraps a task collection with its size.
type TaskListResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Tasks   []model.Task `json:"tasks"`
}

// MessageResponse reports a successful operation with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
