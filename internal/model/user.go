package model

import "time"

// User represents a learner enrolled at the driving school.
// Users identify themselves with a phone number and birth date; there is
// no password (matching the school's enrollment desk workflow).
type User struct {
	ID        int       `json:"id"`
	Phone     string    `json:"phone"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLoginRequest is the payload for user login.
// A failed lookup auto-registers the phone + birth date pair.
type UserLoginRequest struct {
	Phone     string `json:"phone" binding:"required,min=7,max=20"`
	BirthYear int    `json:"birth_year" binding:"required,min=1900,max=2100"`
}

// CreateUserRequest is the admin payload for creating a user directly.
type CreateUserRequest struct {
	Phone     string `json:"phone" binding:"required,min=7,max=20"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}
