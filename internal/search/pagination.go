package search

import "advocatehub/internal/advocate/models"

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// Page is one page of matching advocates.
type Page struct {
	Data       []models.Advocate `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// NewPagination derives page metadata from the unpaginated total. page and
// limit are clamped first, so limit is always at least 1.
func NewPagination(page, limit, total int) Pagination {
	page = ClampPage(page)
	limit = ClampLimit(limit)
	if total < 0 {
		total = 0
	}
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// NewPage wraps data with its pagination. Nil data becomes an empty slice so
// the wire shape is always an array.
func NewPage(data []models.Advocate, page, limit, total int) *Page {
	if data == nil {
		data = []models.Advocate{}
	}
	return &Page{Data: data, Pagination: NewPagination(page, limit, total)}
}

// Offset is the number of rows skipped before page. Clamping bounds page by
// MaxPage, so the product cannot overflow.
func Offset(page, limit int) int {
	return (ClampPage(page) - 1) * ClampLimit(limit)
}

// Window returns at most limit items starting at offset. An offset past the
// end yields an empty slice.
func Window[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) || limit < 1 {
		return []T{}
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
