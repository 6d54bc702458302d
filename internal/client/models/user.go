// Package models defines the client's domain types (session, users, videos,
// dashboard stats) and their conversion from the backend's wire shapes.
package models

import (
	"strings"
	"time"
)

// Role is a user's privilege level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a row of the admin users collection.
type User struct {
	ID                   string
	Email                string
	FirstName            string
	LastName             string
	Username             string
	Role                 Role
	IsActive             bool
	Credits              int
	CreatedAt            time.Time
	TotalVideosGenerated int
}

// FullName joins first and last name, omitting an empty part.
func (u User) FullName() string {
	return displayName(u.FirstName, u.LastName)
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// displayName trims the joined name so a missing last name leaves no trailing space.
func displayName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
