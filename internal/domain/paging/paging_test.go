package paging

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	req := Request{Page: -2}.Normalize(25)
	if req.Page != 1 || req.PerPage != 25 {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", req.Offset())
	}

	req = Request{Page: 3, PerPage: 10}.Normalize(25)
	if req.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", req.Offset())
	}
}

func TestHugePageDoesNotOverflow(t *testing.T) {
	req := Request{Page: math.MaxInt/10 + 2, PerPage: 10}.Normalize(25)
	if req.Page != MaxPage {
		t.Fatalf("expected page clamped to %d, got %d", MaxPage, req.Page)
	}
	if req.Offset() != (MaxPage-1)*10 {
		t.Fatalf("unexpected offset %d", req.Offset())
	}

	raw := Request{Page: math.MaxInt, PerPage: 100}
	if raw.Offset() < 0 {
		t.Fatalf("offset overflowed to %d", raw.Offset())
	}
}

func TestPageNavigation(t *testing.T) {
	page := New([]int{1, 2}, Request{Page: 2, PerPage: 10}, 21)
	if page.Pages() != 3 {
		t.Fatalf("expected 3 pages, got %d", page.Pages())
	}
	if !page.HasPrev() || !page.HasNext() {
		t.Fatalf("expected both directions on page 2 of 3")
	}

	empty := New[int](nil, Request{Page: 1, PerPage: 10}, 0)
	if empty.Items == nil || empty.Pages() != 1 || empty.HasNext() {
		t.Fatalf("unexpected empty page %+v", empty)
	}
}
