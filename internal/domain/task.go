package domain

// CreateTask describes a task to be created on behalf of a user.
// Completed is nil when the caller did not say.
type CreateTask struct {
	Title     string
	Completed *bool
	UserID    int64
}

// UpdateTask carries a partial task update; nil fields are left untouched.
type UpdateTask struct {
	Title     *string
	Completed *bool
}
