package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/api/polls", 1, DefaultLimit},
		{"explicit", "/api/polls?page=3&limit=20", 3, 20},
		{"zero page", "/api/polls?page=0", 1, DefaultLimit},
		{"negative page", "/api/polls?page=-2", 1, DefaultLimit},
		{"garbage", "/api/polls?page=abc&limit=xyz", 1, DefaultLimit},
		{"limit clamped", "/api/polls?limit=500", 1, MaxLimit},
		{"zero limit", "/api/polls?limit=0", 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			p := Parse(r)
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", p.Limit, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	if got := (Params{Page: 1, Limit: 10}).Skip(); got != 0 {
		t.Errorf("page 1 skip = %d, want 0", got)
	}
	if got := (Params{Page: 4, Limit: 10}).Skip(); got != 30 {
		t.Errorf("page 4 skip = %d, want 30", got)
	}
}

func TestPages(t *testing.T) {
	p := Params{Page: 1, Limit: 10}
	tests := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{100, 10},
		{101, 11},
	}
	for _, tt := range tests {
		if got := p.Pages(tt.total); got != tt.want {
			t.Errorf("Pages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
