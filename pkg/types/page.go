package types

import "fmt"

// Pagination bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Page selects a window of a list: skip Offset records, return at most Limit.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage returns the first page with the default limit.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: DefaultLimit}
}

// Normalize validates the page and caps Limit at MaxLimit.
// Negative values return an error wrapping ErrInvalidPage.
func (p Page) Normalize() (Page, error) {
	if p.Offset < 0 {
		return Page{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidPage)
	}
	if p.Limit < 0 {
		return Page{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidPage)
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}
