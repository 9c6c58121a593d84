package entity

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// Page selects a window of a list result.
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the window to sane bounds.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}

	return p
}

// PagedResult carries one page of items along with the unpaged total.
type PagedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
