// Package query holds shared repository query primitives.
package query

// Pagination describes cursor pagination over numeric primary keys.
// After is exclusive; Order is "asc" or "desc".
type Pagination struct {
	Limit  *int
	Offset *int
	After  *uint
	Order  string
}

// NewPagination builds a Pagination from optional request values.
func NewPagination(limit *int, after *uint, order string) *Pagination {
	if order != "desc" {
		order = "asc"
	}
	return &Pagination{Limit: limit, After: after, Order: order}
}
