package paging

import "math"

// MaxPage bounds page numbers taken from query strings.
const MaxPage = 1_000_000

type Request struct {
	Page    int
	PerPage int
}

// Normalize clamps the page to [1, MaxPage] and fills the page size.
func (r Request) Normalize(defaultPerPage int) Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.PerPage <= 0 {
		r.PerPage = defaultPerPage
	}
	if r.PerPage <= 0 {
		r.PerPage = 10
	}
	return r
}

func (r Request) Offset() int {
	if r.Page < 1 || r.PerPage <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PerPage {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PerPage
}

type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
}

func New[T any](items []T, req Request, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: req.Page, PerPage: req.PerPage, Total: total}
}

func (p Page[T]) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.Pages()
}

func (p Page[T]) PrevPage() int {
	return p.Page - 1
}

func (p Page[T]) NextPage() int {
	return p.Page + 1
}
