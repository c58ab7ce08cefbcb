// Package paging implements the offset-based pagination model used by
// every list endpoint: a 1-indexed page number times a page size, with a
// total-page count derived from the filtered count.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of rows returned when the caller does
// not ask for a specific page size.
const DefaultPageSize = 20

// MaxPageSize caps caller-supplied page sizes.
const MaxPageSize = 100

// Page identifies one page of a listing.
type Page struct {
	Number int // 1-indexed
	Size   int
}

// Parse extracts "page" and "pageSize" query parameters, falling back
// to page 1 and DefaultPageSize for missing or invalid values.
func Parse(r *http.Request) Page {
	p := Page{Number: 1, Size: DefaultPageSize}
	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Number = n
		}
	}
	if s := query.Get(r, "pageSize"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Size = n
			if p.Size > MaxPageSize {
				p.Size = MaxPageSize
			}
		}
	}
	return p
}

// Normalized returns a copy with out-of-range values clamped into the
// valid domain, so store code can trust Skip/Limit unconditionally.
func (p Page) Normalized() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Skip returns the document offset for Mongo Find().SetSkip().
func (p Page) Skip() int64 {
	p = p.Normalized()
	return int64(p.Number-1) * int64(p.Size)
}

// Limit returns the page size for Mongo Find().SetLimit().
func (p Page) Limit() int64 {
	return int64(p.Normalized().Size)
}

// TotalPages returns how many pages a result set of total rows spans.
// Zero rows means zero pages; an empty page is not an error, just empty.
func TotalPages(total int64, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
