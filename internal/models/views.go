package models

import "time"

// AccountView is the read-optimised projection of an account.
// It never exposes PasswordHash and is the shape cached in Redis.
type AccountView struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Phone     string        `json:"phone,omitempty"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"createdTimestamp"`
	UpdatedAt time.Time     `json:"updatedTimestamp"`
}
