package layout

import (
	"slices"
	"testing"
)

func TestPaginate(t *testing.T) {
	notes := []Note{
		{ID: "c", Page: 2, CreatedAtMillis: 30},
		{ID: "a", Page: 0, CreatedAtMillis: 10},
		{ID: "b", Page: 0, CreatedAtMillis: 5},
	}

	p := Paginate(notes)

	if p.MaxPage != 2 {
		t.Errorf("MaxPage = %d, want 2", p.MaxPage)
	}
	if p.Count() != 3 {
		t.Errorf("Count() = %d, want 3", p.Count())
	}
	if got := p.Numbers(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Numbers() = %v, want [0 2]", got)
	}

	first := p.Page(0)
	if len(first) != 2 || first[0].ID != "b" || first[1].ID != "a" {
		t.Errorf("Page(0) not in creation order: %+v", first)
	}
	if p.Page(1) != nil {
		t.Errorf("Page(1) = %+v, want nil", p.Page(1))
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil)
	if p.Count() != 1 {
		t.Errorf("Count() = %d, want 1", p.Count())
	}
	if p.MaxPage != 0 {
		t.Errorf("MaxPage = %d, want 0", p.MaxPage)
	}
	if len(p.Numbers()) != 0 {
		t.Errorf("Numbers() = %v, want empty", p.Numbers())
	}
}

func TestSortByCreationStable(t *testing.T) {
	notes := []Note{
		{ID: "x", CreatedAtMillis: 2},
		{ID: "y", CreatedAtMillis: 1},
		{ID: "z", CreatedAtMillis: 2},
	}

	got := SortByCreation(notes)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if !slices.Equal(ids, []string{"y", "x", "z"}) {
		t.Errorf("SortByCreation order = %v", ids)
	}
	if notes[0].ID != "x" {
		t.Error("SortByCreation modified its input")
	}
}
