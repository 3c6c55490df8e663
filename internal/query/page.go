package query

import (
	"errors"
	"fmt"
)

// ErrInvalidPageRequest indicates a page request with a negative offset or a
// non-positive limit.
var ErrInvalidPageRequest = errors.New("invalid page request")

// PageRequest is an offset/limit page selector.
type PageRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageRequest builds a request for the zero-based page number of the given size.
func NewPageRequest(page, size int) PageRequest {
	return PageRequest{Offset: page * size, Limit: size}
}

// Validate validates the page request.
func (p PageRequest) Validate() error {
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be greater than 0, got %d", ErrInvalidPageRequest, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must be non-negative, got %d", ErrInvalidPageRequest, p.Offset)
	}
	return nil
}

// PageResult is one page of results plus the total number of matching rows.
type PageResult[T any] struct {
	Content []T   `json:"content"`
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Offset  int   `json:"offset"`
}

// TotalPages returns the number of pages of Size needed to hold Total rows.
func (p PageResult[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := int(p.Total) / p.Size
	if int(p.Total)%p.Size > 0 {
		pages++
	}
	return pages
}

// HasNext reports whether rows exist beyond this page.
func (p PageResult[T]) HasNext() bool {
	return int64(p.Offset+len(p.Content)) < p.Total
}
