package model

type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices an already sorted collection. Page is 1-indexed. Pages
// past the end are empty; page arithmetic never overflows.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	total := len(items)
	pages := 0
	if total > 0 {
		pages = (total-1)/size + 1
	}
	result := Page[T]{
		Items:      []T{},
		TotalCount: total,
		Page:       page,
		Size:       size,
		TotalPages: pages,
	}
	if page > pages {
		return result
	}
	skip := (page - 1) * size
	end := skip + min(size, total-skip)
	result.Items = append(result.Items, items[skip:end]...)
	return result
}
