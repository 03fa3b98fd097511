package v1

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		url      string
		page     int
		pageSize int
	}{
		{"/entities", 1, DefaultPageSize},
		{"/entities?page=3&page_size=50", 3, 50},
		{"/entities?page=0", 1, DefaultPageSize},
		{"/entities?page=-2&page_size=-5", 1, DefaultPageSize},
		{"/entities?page_size=5000", 1, MaxPageSize},
		{"/entities?page=abc&page_size=xyz", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		p := ParsePagination(httptest.NewRequest("GET", tt.url, nil))
		if p.Page() != tt.page || p.PageSize() != tt.pageSize {
			t.Errorf("%s: page=%d size=%d, want %d/%d", tt.url, p.Page(), p.PageSize(), tt.page, tt.pageSize)
		}
	}
}

func TestPaginationOffset(t *testing.T) {
	p := ParsePagination(httptest.NewRequest("GET", "/entities?page=4&page_size=25", nil))
	if p.Offset() != 75 {
		t.Errorf("offset = %d", p.Offset())
	}
	if p.Limit() != 25 {
		t.Errorf("limit = %d", p.Limit())
	}
}

func TestPaginationMeta(t *testing.T) {
	p := ParsePagination(httptest.NewRequest("GET", "/entities?page=2&page_size=10", nil))
	meta := p.Meta(31)
	if meta.TotalPages != 4 {
		t.Errorf("total pages = %d, want 4", meta.TotalPages)
	}
	if meta.TotalCount != 31 || meta.Page != 2 || meta.PageSize != 10 {
		t.Errorf("meta = %+v", meta)
	}

	if got := p.Meta(0).TotalPages; got != 0 {
		t.Errorf("empty total pages = %d", got)
	}
}
