package models

import (
	"math"
	"strings"
)

// Pagination defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageParams describes a page request shared by every listing endpoint.
type PageParams struct {
	Page   int    `form:"page" json:"page" validate:"min=1"`
	Size   int    `form:"size" json:"size" validate:"min=1,max=100"`
	Search string `form:"search" json:"search,omitempty"`
}

// NewPageParams returns params populated with defaults.
func NewPageParams() PageParams {
	return PageParams{Page: DefaultPage, Size: DefaultPageSize}
}

// Offset returns the number of rows preceding the requested page. Pages too
// large to address are clamped to the furthest representable offset.
func (p PageParams) Offset() int {
	if p.Page < 1 || p.Size < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt / p.Size * p.Size
	}
	return (p.Page - 1) * p.Size
}

// SearchTerm returns the trimmed search string.
func (p PageParams) SearchTerm() string {
	return strings.TrimSpace(p.Search)
}

// Page is the pagination envelope returned by list operations. Size echoes the
// requested page size, not the number of items returned.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// NewPage assembles a Page, never serialising a nil item slice.
func NewPage[T any](items []T, total, pages, page, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: page, Size: size, Pages: pages}
}
