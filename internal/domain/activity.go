package domain

import (
	"encoding/json"
	"time"
)

// ActivityType kind of user activity entry
type ActivityType string

const (
	ActivityLogin                ActivityType = "login_success"
	ActivityLoginFailed          ActivityType = "login_failed"
	ActivityProfileUpdated       ActivityType = "profile_updated"
	ActivityPasswordChanged      ActivityType = "password_changed"
	ActivityReservationCreated   ActivityType = "reservation_created"
	ActivityReservationCancelled ActivityType = "reservation_cancelled"
)

// Activity is an entry of the user's activity log
type Activity struct {
	ID          int64
	UserID      int64
	Type        ActivityType
	Description string
	IPAddress   *string
	UserAgent   *string
	Metadata    json.RawMessage
	CreatedAt   time.Time
}
