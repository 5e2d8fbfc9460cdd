package model

import "time"

// User is a deck service account
type User struct {
	Username     string    `json:"username"`     // login username (immutable)
	PasswordHash string    `json:"passwordHash"` // bcrypt hash
	CreatedAt    time.Time `json:"createdAt"`
}
