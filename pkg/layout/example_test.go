package layout_test

import (
	"fmt"

	"github.com/matzehuels/postboard/pkg/layout"
)

func ExampleEstimateFootprint() {
	for _, n := range []int{0, 57, 100} {
		fp := layout.EstimateFootprint(n)
		fmt.Printf("%d glyphs: %.0f x %.0f\n", n, fp.Width, fp.Height)
	}
	// Output:
	// 0 glyphs: 120 x 100
	// 57 glyphs: 250 x 120
	// 100 glyphs: 250 x 140
}

func ExamplePlace() {
	canvas := layout.Canvas{Width: 1400, Height: 800}

	first, _ := layout.Place(nil, canvas, 0, 0)
	fmt.Printf("first:  %.2f %.2f page %d\n", first.X, first.Y, first.Page)

	existing := []layout.Note{{ID: "first", X: first.X, Y: first.Y, Page: first.Page}}
	second, _ := layout.Place(existing, canvas, 0, 0)
	fmt.Printf("second: %.2f %.2f page %d\n", second.X, second.Y, second.Page)
	// Output:
	// first:  6.43 10.00 page 0
	// second: 17.86 10.00 page 0
}

func ExamplePaginate() {
	notes := []layout.Note{
		{ID: "a", Page: 0},
		{ID: "b", Page: 0},
		{ID: "c", Page: 1},
	}
	pages := layout.Paginate(notes)
	fmt.Println(pages.Count(), len(pages.Page(0)), len(pages.Page(1)))
	// Output: 2 2 1
}
