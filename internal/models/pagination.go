package models

// PageInfo describes one page of a paginated listing. HasNext and HasPrev are
// derived from Total, Page and PageSize; they are never stored.
type PageInfo struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_prev"`
}

// NewPageInfo derives the navigation flags for a page of a listing.
func NewPageInfo(page, pageSize int, total int64) PageInfo {
	return PageInfo{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasNext:  int64(page)*int64(pageSize) < total,
		HasPrev:  page > 1,
	}
}
