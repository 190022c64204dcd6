// Package page validates offset pagination parameters.
package page

import (
	"fmt"

	"github.com/kailas-cloud/storeguard/internal/domain"
)

// Limits bounds the page size for one listing.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// Page is a validated 1-based page number and page size.
type Page struct {
	number int
	size   int
}

// New validates number >= 1 and 1 <= size <= limits.MaxSize.
// Out-of-range values are rejected, never clamped.
func New(number, size int, limits Limits) (Page, error) {
	if number < 1 {
		return Page{}, fmt.Errorf("page must be >= 1, got %d: %w", number, domain.ErrInvalidPagination)
	}
	if size < 1 || size > limits.MaxSize {
		return Page{}, fmt.Errorf(
			"size must be between 1 and %d, got %d: %w", limits.MaxSize, size, domain.ErrInvalidPagination,
		)
	}
	return Page{number: number, size: size}, nil
}

// FromParams applies defaults for absent parameters (page 1, limits.DefaultSize) and validates.
func FromParams(number, size *int, limits Limits) (Page, error) {
	n := 1
	if number != nil {
		n = *number
	}
	s := limits.DefaultSize
	if size != nil {
		s = *size
	}
	return New(n, s, limits)
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size.
func (p Page) Size() int { return p.size }

// Offset returns how many items precede this page.
func (p Page) Offset() int { return (p.number - 1) * p.size }

// Limit returns the maximum number of items on this page.
func (p Page) Limit() int { return p.size }
