// Package models holds the persistence-layer structs shared by
// repositories and services.
package models

import "time"

// Roles a back-office account can hold.
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
)

// Profile is the application-level user record, distinct from the token
// service's identity. Created lazily the first time a session is observed
// with no matching row.
type Profile struct {
	ID           string
	Email        string
	Name         string
	Role         string
	AvatarKey    string // object storage key, empty when unset
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
