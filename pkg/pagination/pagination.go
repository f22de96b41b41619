// Package pagination windows list responses by page and per_page query
// parameters and reports totals in response headers.
package pagination

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100

	// MaxPage keeps Offset from overflowing at any allowed per_page.
	MaxPage = math.MaxInt / MaxPerPage

	HeaderTotalCount = "X-Total-Count"
	HeaderTotalPages = "X-Total-Pages"
)

// Params is a 1-based page request.
type Params struct {
	Page    int
	PerPage int
}

// Offset is the index of the page's first item.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// FromRequest reads page and per_page. Missing, non-numeric or out-of-range
// values fall back to page 1 and DefaultPerPage. Pages past MaxPage are
// clamped to it.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	return Params{
		Page:    min(positive(q.Get("page"), 1, 0), MaxPage),
		PerPage: positive(q.Get("per_page"), DefaultPerPage, MaxPerPage),
	}
}

func positive(raw string, fallback, max int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || (max > 0 && v > max) {
		return fallback
	}
	return v
}

// Window returns the page of items selected by p. A page past the end is
// empty, never nil.
func Window[T any](items []T, p Params) []T {
	start := len(items)
	if p.Page >= 1 && p.Page <= MaxPage {
		start = min(p.Offset(), len(items))
	}
	end := min(start+p.PerPage, len(items))
	return append(make([]T, 0, end-start), items[start:end]...)
}

// TotalPages is the number of pages needed for total items.
func TotalPages(total int, p Params) int {
	return (total + p.PerPage - 1) / p.PerPage
}

// SetHeaders reports the unwindowed total on the response.
func SetHeaders(w http.ResponseWriter, total int, p Params) {
	w.Header().Set(HeaderTotalCount, strconv.Itoa(total))
	w.Header().Set(HeaderTotalPages, strconv.Itoa(TotalPages(total, p)))
}
