package result

// PagedResult is one page of an ordered collection plus the size of the
// whole collection.
type PagedResult[T any] struct {
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

// Paginate cuts page (1-based) of the given size out of items. Pages past
// the end give an empty, non-nil Items slice. The returned Items never
// alias the input.
func Paginate[T any](items []T, page, size int) *PagedResult[T] {
	total := len(items)
	start := total
	if page >= 1 && size >= 1 && page-1 <= total/size {
		start = (page - 1) * size
	}
	length := min(max(size, 0), total-start)

	out := make([]T, length)
	copy(out, items[start:start+length])

	return &PagedResult[T]{
		TotalCount: total,
		Items:      out,
	}
}
