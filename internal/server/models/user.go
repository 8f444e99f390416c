// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered identity. Email is unique; the password is stored only
// as a bcrypt hash.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
