package domain

import "time"

// User is an account allowed to book rides
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Account      *string // corporate account identifier sent to the provider
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfileUpdate fields changed by the profile endpoint; nil means unchanged
type UserProfileUpdate struct {
	Name         *string
	Phone        *string
	ClearPhone   bool
	Account      *string
	ClearAccount bool
}
