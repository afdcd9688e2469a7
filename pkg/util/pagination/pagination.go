// Package pagination holds the page/limit arithmetic shared by list endpoints.
package pagination

// Page is a normalized page request. Limit 0 means "everything on one page".
type Page struct {
	Page  int
	Limit int
}

// New normalizes raw query values, falling back to defaultLimit when limit <= 0.
// An unbounded page is always page 1.
func New(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = max(defaultLimit, 0)
	}
	if limit == 0 {
		page = 1
	}
	return Page{Page: page, Limit: limit}
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	if p.Limit == 0 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit). An unbounded page counts as one page when non-empty.
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	if p.Limit == 0 {
		return 1
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
