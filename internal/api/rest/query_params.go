package rest

const MAX_PAGE_SIZE = 100

// HistoryQueryParams holds pagination for GET /crawler/history
type HistoryQueryParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// Normalize clamps pagination to sane bounds
func (p *HistoryQueryParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > MAX_PAGE_SIZE {
		p.Limit = MAX_PAGE_SIZE
	}
}

// Offset converts one-based page numbering to a row offset
func (p *HistoryQueryParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
