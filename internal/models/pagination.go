package models

// Pagination describes the page a list slice currently mirrors.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// Normalize enforces 1 <= CurrentPage <= TotalPages. An empty collection is
// reported as a single empty page. HasNext and HasPrev are derived from the
// clamped page, not taken from the server.
func (p Pagination) Normalize() Pagination {
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
	if p.TotalItems < 0 {
		p.TotalItems = 0
	}
	p.HasNext = p.CurrentPage < p.TotalPages
	p.HasPrev = p.CurrentPage > 1
	return p
}
