package model

// Page is one page of a listing. It is derived from a store query and is
// never cached beyond the response it belongs to.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Size          int `json:"size"`
	Number        int `json:"number"`
}

// NewPage builds a Page from one slice of results and the total row count.
// A nil slice is replaced by an empty one so it encodes as [].
func NewPage[T any](content []T, total, page, size int) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}
}

// Offset returns the row offset of page for the given size.
func Offset(page, size int) int {
	return page * size
}
