package entity

import "slices"

// Default role names seeded by the migration command.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Permission names checked by the HTTP layer.
const (
	ScopeAdminRead            = "admin:read"
	ScopeAdminWrite           = "admin:write"
	ScopeUserRead             = "user:read"
	ScopeUserWrite            = "user:write"
	ScopeRoleRead             = "role:read"
	ScopeRoleWrite            = "role:write"
	ScopeProfileRead          = "profile:read"
	ScopeProfileWrite         = "profile:write"
	ScopeCustomerProfileRead  = "customer_profile:read"
	ScopeCustomerProfileWrite = "customer_profile:write"
)

// AllScopes lists every permission in seed order.
var AllScopes = Scopes{
	ScopeAdminRead, ScopeAdminWrite,
	ScopeUserRead, ScopeUserWrite,
	ScopeRoleRead, ScopeRoleWrite,
	ScopeProfileRead, ScopeProfileWrite,
	ScopeCustomerProfileRead, ScopeCustomerProfileWrite,
}

// CustomerScopes are the permissions granted to the customer role.
var CustomerScopes = Scopes{
	ScopeUserRead, ScopeUserWrite,
	ScopeCustomerProfileRead, ScopeCustomerProfileWrite,
}

// Scopes is a set of permission names.
type Scopes []string

// Contains checks if the scope set grants a specific scope.
func (s Scopes) Contains(scope string) bool {
	return slices.Contains(s, scope)
}

// ContainsAll reports whether every required scope is granted.
func (s Scopes) ContainsAll(required ...string) bool {
	for _, r := range required {
		if !s.Contains(r) {
			return false
		}
	}

	return true
}

// Union returns the de-duplicated union of both sets, keeping first-seen order.
func (s Scopes) Union(other Scopes) Scopes {
	out := make(Scopes, 0, len(s)+len(other))
	for _, scope := range append(slices.Clone(s), other...) {
		if !out.Contains(scope) {
			out = append(out, scope)
		}
	}

	return out
}
