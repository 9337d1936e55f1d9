// internal/app/system/paging/paging.go

// Package paging parses and applies offset pagination for list endpoints.
// The wire contract is page/limit query parameters with a pages count in
// the response, so this is plain skip/limit rather than keyset cursors.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the client does not ask for one.
const DefaultLimit = 10

// MaxLimit caps client-requested page sizes.
const MaxLimit = 50

// Params holds a parsed page/limit pair. Both are always >= 1.
type Params struct {
	Page  int
	Limit int
}

// Parse extracts "page" and "limit" from the request query. Missing or
// invalid values fall back to page 1 and DefaultLimit; limits above
// MaxLimit are clamped.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: DefaultLimit}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip returns the number of documents to skip for this page, typed for
// Mongo Find().SetSkip().
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Pages returns the total page count for the given total row count.
// Zero rows means zero pages.
func (p Params) Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}
