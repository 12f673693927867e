package pagination

// Pagination is bound from list query strings.
type Pagination struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
}

func (p Pagination) Normalize() Pagination {
	out := p
	if out.Page < 1 {
		out.Page = 1
	}
	if out.PageSize <= 0 {
		out.PageSize = 50
	} else if out.PageSize > 200 {
		out.PageSize = 200
	}
	return out
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

func (p Pagination) Limit() int {
	return p.Normalize().PageSize
}
