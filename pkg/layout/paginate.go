package layout

import (
	"maps"
	"slices"
)

// Pages groups a board's notes by page.
type Pages struct {
	ByPage  map[int][]Note
	MaxPage int
}

// Paginate groups notes by their page, each page in creation order.
func Paginate(notes []Note) Pages {
	p := Pages{ByPage: make(map[int][]Note)}
	for _, n := range SortByCreation(notes) {
		p.ByPage[n.Page] = append(p.ByPage[n.Page], n)
		p.MaxPage = max(p.MaxPage, n.Page)
	}
	return p
}

// Count returns the number of pages to offer for navigation. A board always
// has at least one page, and pages between used ones count even when empty.
func (p Pages) Count() int {
	return max(1, p.MaxPage+1)
}

// Page returns the notes on page n, or nil if it has none.
func (p Pages) Page(n int) []Note {
	return p.ByPage[n]
}

// Numbers returns the page numbers that hold at least one note, ascending.
func (p Pages) Numbers() []int {
	return slices.Sorted(maps.Keys(p.ByPage))
}
