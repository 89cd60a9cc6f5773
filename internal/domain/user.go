package domain

import "time"

// User is a registered member of the directory. Password is stored as provided.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
