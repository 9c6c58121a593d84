package entity

import "time"

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    int64
	JTI       string
	Scopes    Scopes
	ExpiresAt time.Time
}

// HasScopes reports whether the caller holds every required scope.
func (p *Principal) HasScopes(required ...string) bool {
	return p != nil && p.Scopes.ContainsAll(required...)
}
