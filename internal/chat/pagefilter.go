package chat

import (
	"github.com/bmatcuk/doublestar/v4"
)

// PageFilter decides whether the widget appears on a page. Exclusions win
// over inclusions; an empty include list means every page is included.
type PageFilter struct {
	include []string
	exclude []string
}

// NewPageFilter creates a filter from glob patterns like "/nos-business/**".
func NewPageFilter(include, exclude []string) *PageFilter {
	return &PageFilter{include: include, exclude: exclude}
}

// Allowed reports whether the widget may appear on the given page path.
// Invalid patterns are treated as non-matching.
func (f *PageFilter) Allowed(page string) bool {
	for _, pattern := range f.exclude {
		if ok, err := doublestar.Match(pattern, page); err == nil && ok {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, pattern := range f.include {
		if ok, err := doublestar.Match(pattern, page); err == nil && ok {
			return true
		}
	}
	return false
}
