package http

import "userhub/internal/domain"

// CreateTaskRequest is the body accepted when creating a task.
// No route serves it yet.
type CreateTaskRequest struct {
	Title     string `json:"title" validate:"required"`
	Completed *bool  `json:"completed,omitempty"`
}

// UpdateTaskRequest is the body accepted when updating a task. Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitnil,min=1"`
	Completed *bool   `json:"completed,omitempty"`
}

func (r CreateTaskRequest) Validate() []ValidationError {
	return ValidateRequest(r)
}

// ToDomain attaches the owning user to the request.
func (r CreateTaskRequest) ToDomain(userID int64) domain.CreateTask {
	return domain.CreateTask{
		Title:     r.Title,
		Completed: r.Completed,
		UserID:    userID,
	}
}

func (r UpdateTaskRequest) Validate() []ValidationError {
	return ValidateRequest(r)
}

func (r UpdateTaskRequest) ToDomain() domain.UpdateTask {
	return domain.UpdateTask{
		Title:     r.Title,
		Completed: r.Completed,
	}
}
