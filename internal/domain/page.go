package domain

// Page is the paginated response envelope: zero-based page index plus the
// total counts the client needs to render pagers.
type Page struct {
	Content       any   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage(content any, page, size int, total int64) Page {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page{Content: content, Page: page, Size: size, TotalElements: total, TotalPages: pages}
}
