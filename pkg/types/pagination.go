package types

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	PageSize    int `json:"pageSize"`
}

// MakePagination derives pagination state from an item count, keeping the
// invariant 1 <= CurrentPage <= max(TotalPages, 1).
func MakePagination(current, totalItems, pageSize int) Pagination {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return Pagination{
		CurrentPage: clamp(current, 1, pages),
		TotalPages:  pages,
		TotalItems:  totalItems,
		PageSize:    pageSize,
	}
}
