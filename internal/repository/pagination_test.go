package repository

import "testing"

func TestNormalizePageRequest(t *testing.T) {
	cases := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"defaults", PageRequest{}, PageRequest{Page: DefaultPage, PageSize: DefaultPageSize}},
		{"negative", PageRequest{Page: -3, PageSize: -1}, PageRequest{Page: DefaultPage, PageSize: DefaultPageSize}},
		{"capped", PageRequest{Page: 2, PageSize: 5000}, PageRequest{Page: 2, PageSize: MaxPageSize}},
		{"passthrough", PageRequest{Page: 4, PageSize: 10}, PageRequest{Page: 4, PageSize: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePageRequest(tc.in); got != tc.want {
				t.Fatalf("normalizePageRequest(%+v)=%+v want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCalcTotalPages(t *testing.T) {
	if got := calcTotalPages(0, 10); got != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", got)
	}
	if got := calcTotalPages(21, 10); got != 3 {
		t.Fatalf("expected 3 pages, got %d", got)
	}
	if got := calcTotalPages(20, 10); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
	if got := calcTotalPages(5, 0); got != 0 {
		t.Fatalf("expected 0 pages for zero page size, got %d", got)
	}
}
