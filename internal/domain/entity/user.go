// Package entity contains the core business objects of the pharmacy,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is a login identity. Administrators sign in with email and password,
// customers with a phone number and a one-time password.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"role_id"`
	Role         *Role     `json:"role,omitempty"` // Loaded with permissions when the caller needs scopes.
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Scopes returns the permissions granted through the user's role.
func (u *User) Scopes() Scopes {
	if u == nil || u.Role == nil {
		return nil
	}

	return u.Role.Scopes()
}

// Role groups a set of permissions under a unique name.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Scopes converts the role's permissions into scope strings.
func (r *Role) Scopes() Scopes {
	scopes := make(Scopes, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		scopes = append(scopes, p.Name)
	}

	return scopes
}

// Permission is a single named capability such as "admin:read".
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// RolePatch carries the optional changes to a role. Non-nil permissions replace the set.
type RolePatch struct {
	Name        *string
	Description *string
	Permissions *[]string
}
