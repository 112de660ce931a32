package model

// Page selects a window of a list result. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset returns number of rows to skip.
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// PageResult is a window of items together with total match count.
type PageResult[T any] struct {
	Items []T
	Total int
	Page  Page
}

// HasNext reports whether more items follow this page.
func (r PageResult[T]) HasNext() bool {
	return r.Page.Size > 0 && r.Page.Offset()+len(r.Items) < r.Total
}

// HasPrevious reports whether this page is not the first one.
func (r PageResult[T]) HasPrevious() bool {
	return r.Page.Number > 1
}
