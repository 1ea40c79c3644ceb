package domain

import (
	"strings"
	"time"
)

// Role is a closed enumeration compared by value. The string form is parsed
// case-insensitively at the edges (ParseRole) so that stored legacy values
// like "admin" and "ADMIN" resolve to the same role.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalises a raw role string to a Role. Unknown values map to
// RoleUser so that a corrupt role column can never grant admin access.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// User models a registered forum member.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // bcrypt; salt embedded in the hash
	Role          Role      `json:"role"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Country       string    `json:"country,omitempty"`
	AboutMe       string    `json:"about_me,omitempty"`
	DOB           string    `json:"dob,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
