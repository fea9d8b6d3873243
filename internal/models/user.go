package models

import (
	"time"
)

// User represents an account that can log in and own comments and notes
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MaxUsernameLength mirrors the username column size
const MaxUsernameLength = 150
