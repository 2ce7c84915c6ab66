package mintpaper

import (
	"math"
	"strconv"
	"strings"
)

// PageSizes holds the number of posts shown on the landing page and on
// every other listing page.
type PageSizes struct {
	PerIndex int
	PerPage  int
}

// Pagination is one page of a listing. CurrentPage is 1-based; a value of 0
// means the requested page does not exist and the caller should render a
// not-found page.
type Pagination[T any] struct {
	TotalPages  int
	CurrentPage int
	Posts       []T
	Path        string // listing base path, e.g. "/posts" or "/tags/go"
}

// PostPage is the pagination of blog posts handed to listing views.
type PostPage = Pagination[BlogPost]

// NotFound reports whether the requested page was invalid.
func (p Pagination[T]) NotFound() bool {
	return p.CurrentPage == 0
}

// HasPrev reports whether a page precedes the current one.
func (p Pagination[T]) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page follows the current one.
func (p Pagination[T]) HasNext() bool {
	return p.CurrentPage > 0 && p.CurrentPage < p.TotalPages
}

// PageURL returns the URL of page n under Path. Page 1 lives at the bare path.
func (p Pagination[T]) PageURL(n int) string {
	base := strings.TrimRight(p.Path, "/")
	if n <= 1 {
		return base + "/"
	}
	return base + "/" + strconv.Itoa(n) + "/"
}

// PrevURL returns the URL of the previous page, or "" on the first page.
func (p Pagination[T]) PrevURL() string {
	if !p.HasPrev() {
		return ""
	}
	return p.PageURL(p.CurrentPage - 1)
}

// NextURL returns the URL of the next page, or "" on the last page.
func (p Pagination[T]) NextURL() string {
	if !p.HasNext() {
		return ""
	}
	return p.PageURL(p.CurrentPage + 1)
}

// PageNumbers lists the valid page numbers {1 … n} for total posts split
// perPage at a time.
func PageNumbers(total, perPage int) []int {
	if total <= 0 || perPage <= 0 {
		return []int{}
	}
	n := (total + perPage - 1) / perPage
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Paginate slices posts for the requested page. When isIndex is set the
// page argument is ignored and the first PerIndex posts are returned as
// page 1. Otherwise page must name an existing page number; anything else
// yields CurrentPage 0 and no posts.
func Paginate[T any](sizes PageSizes, posts []T, page string, isIndex bool) Pagination[T] {
	totalPages := len(PageNumbers(len(posts), sizes.PerPage))

	current := 1
	if !isIndex {
		current = parsePage(page, totalPages)
	}

	last := current * sizes.PerPage
	start := last - sizes.PerPage
	if isIndex {
		last = sizes.PerIndex
		start = 0
	}

	return Pagination[T]{
		TotalPages:  totalPages,
		CurrentPage: current,
		Posts:       slicePosts(posts, start, last),
	}
}

// PaginateNumber is Paginate for an already numeric page.
func PaginateNumber[T any](sizes PageSizes, posts []T, page int, isIndex bool) Pagination[T] {
	return Paginate(sizes, posts, strconv.Itoa(page), isIndex)
}

// parsePage returns page as an integer in [1, totalPages], or 0. Decimal
// and exponent forms are accepted, as are unsigned 0x, 0o and 0b integers.
func parsePage(page string, totalPages int) int {
	s := strings.TrimSpace(page)
	if s == "" {
		return 0
	}
	var f float64
	if hasRadixPrefix(s) {
		if strings.Contains(s, "_") {
			return 0
		}
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0
		}
		f = float64(n)
	} else {
		var err error
		f, err = strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0
		}
	}
	if f < 1 || f > float64(totalPages) {
		return 0
	}
	return int(f)
}

func hasRadixPrefix(s string) bool {
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func slicePosts[T any](posts []T, start, end int) []T {
	start = max(0, min(start, len(posts)))
	end = max(0, min(end, len(posts)))
	if start >= end {
		return []T{}
	}
	out := make([]T, end-start)
	copy(out, posts[start:end])
	return out
}
