package menu

import "context"

// Pager supplies pages of items to a menu. Previous and Next report whether
// the page actually changed: at either end of the list they return the
// current page with moved=false, and the menu stays where it is. An error is
// treated the same way by callers, so a failing remote source degrades to
// "no adjacent page".
type Pager[T any] interface {
	// Current returns the current page without moving
	Current() []T

	// Page returns the zero-based index of the current page
	Page() int

	// Previous moves to and returns the previous page
	Previous(ctx context.Context) (items []T, moved bool, err error)

	// Next moves to and returns the next page
	Next(ctx context.Context) (items []T, moved bool, err error)
}

// SlicePager pages over an in-memory slice.
type SlicePager[T any] struct {
	items  []T
	limit  int
	offset int
}

// NewSlicePager creates a pager over items with the given page size. A
// non-positive limit defaults to 5 items per page.
func NewSlicePager[T any](items []T, limit int) *SlicePager[T] {
	if limit < 1 {
		limit = 5
	}
	return &SlicePager[T]{items: items, limit: limit}
}

func (p *SlicePager[T]) Current() []T {
	end := p.offset + p.limit
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[p.offset:end]
}

func (p *SlicePager[T]) Page() int {
	return p.offset / p.limit
}

func (p *SlicePager[T]) Previous(_ context.Context) ([]T, bool, error) {
	if p.offset == 0 {
		return p.Current(), false, nil
	}
	p.offset -= p.limit
	if p.offset < 0 {
		p.offset = 0
	}
	return p.Current(), true, nil
}

func (p *SlicePager[T]) Next(_ context.Context) ([]T, bool, error) {
	if p.offset+p.limit >= len(p.items) {
		return p.Current(), false, nil
	}
	p.offset += p.limit
	return p.Current(), true, nil
}
