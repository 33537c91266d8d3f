package domain

import "time"

// User is the sole persisted entity of the service.
type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
