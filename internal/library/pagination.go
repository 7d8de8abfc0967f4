package library

import "math"

// Pagination is the metadata returned with every list page. NextPage and
// PrevPage are skip offsets, nil when there is no such page.
type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
}

// Paginate builds list metadata. Any skip >= 0 is safe, including math.MaxInt.
func Paginate(total, skip, limit int) Pagination {
	p := Pagination{
		Total:   total,
		Page:    1,
		Limit:   limit,
		HasNext: total-skip > limit,
		HasPrev: skip > 0,
	}
	if limit > 0 {
		p.Page = skip / limit
		if p.Page < math.MaxInt {
			p.Page++
		}
		p.TotalPages = (total + limit - 1) / limit
	}
	if p.HasNext {
		n := skip + limit
		p.NextPage = &n
	}
	if p.HasPrev {
		n := skip - limit
		p.PrevPage = &n
	}
	return p
}
