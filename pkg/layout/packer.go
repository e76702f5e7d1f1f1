package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/postboard/pkg/errors"
)

// Packing constants, in canvas pixels unless noted.
const (
	BasePadding  = 30 // margin kept free along every canvas edge
	MinGap       = 15 // clearance added around both rectangles in overlap tests
	NotesPerPage = 20 // legacy page size for records without a page (notes, not pixels)
	GridStep     = 20 // stride of the exhaustive fallback sweep
)

// Stage names the packing step that produced a placement.
type Stage string

const (
	StageEmptyPage Stage = "empty-page" // nothing on the page yet
	StageRow       Stage = "row"        // slot to the right of an existing note
	StageNewRow    Stage = "new-row"    // below the last row
	StageGrid      Stage = "grid"       // exhaustive grid sweep
	StageOverflow  Stage = "overflow"   // page full, moved to the next page
)

// Decision is a placement together with how it was found.
type Decision struct {
	Placement Placement `json:"placement"`
	Stage     Stage     `json:"stage"`
	Footprint Footprint `json:"footprint"`
	Rect      Rect      `json:"rect"` // pixel rectangle on the resolved page
	Neighbors int       `json:"neighbors"`
}

// Overflowed reports whether the note was pushed past the requested page.
func (d Decision) Overflowed() bool { return d.Stage == StageOverflow }

// Place computes where a note with textLength glyphs goes on the given page.
//
// existing may contain notes from any page; only those on page take part. The
// result is on page, or on page+1 when page has no free slot. Place returns an
// error only for malformed input.
func Place(existing []Note, canvas Canvas, textLength, page int) (Placement, error) {
	d, err := PlaceDetailed(existing, canvas, textLength, page)
	if err != nil {
		return Placement{}, err
	}
	return d.Placement, nil
}

// PlaceNext places a note on the last page of the board, spilling onto a new
// page when that one is full.
func PlaceNext(existing []Note, canvas Canvas, textLength int) (Placement, error) {
	if err := validateNotes(existing); err != nil {
		return Placement{}, err
	}
	return Place(existing, canvas, textLength, Paginate(existing).MaxPage)
}

// PlaceDetailed is [Place] but also reports the stage that produced the
// placement and the note's pixel rectangle.
func PlaceDetailed(existing []Note, canvas Canvas, textLength, page int) (Decision, error) {
	if err := canvas.Validate(); err != nil {
		return Decision{}, err
	}
	if err := errors.ValidateTextLength(textLength); err != nil {
		return Decision{}, err
	}
	if err := errors.ValidatePage(page); err != nil {
		return Decision{}, err
	}
	if err := validateNotes(existing); err != nil {
		return Decision{}, err
	}

	fp := EstimateFootprint(textLength)
	onPage := notesOnPage(existing, page)
	if len(onPage) == 0 {
		return corner(fp, canvas, page, StageEmptyPage, 0), nil
	}

	p := packer{canvas: canvas, fp: fp, rects: make([]Rect, len(onPage))}
	for i, n := range onPage {
		p.rects[i] = NoteRect(n, canvas)
	}
	return p.pack(page), nil
}

// notesOnPage returns the notes on page, in creation order.
func notesOnPage(notes []Note, page int) []Note {
	var out []Note
	for _, n := range SortByCreation(notes) {
		if n.Page == page {
			out = append(out, n)
		}
	}
	return out
}

type packer struct {
	canvas Canvas
	fp     Footprint
	rects  []Rect
}

func (p *packer) pack(page int) Decision {
	left, top, stage := p.candidate()

	maxLeft := p.canvas.Width - BasePadding - p.fp.Width
	maxTop := p.canvas.Height - BasePadding - p.fp.Height
	left = max(BasePadding, min(left, maxLeft))
	top = max(BasePadding, min(top, maxTop))

	if p.fits(left, top) && p.free(left, top) {
		return p.decide(left, top, page, stage)
	}

	for y := float64(BasePadding); y+p.fp.Height <= p.canvas.Height-BasePadding; y += GridStep {
		for x := float64(BasePadding); x+p.fp.Width <= p.canvas.Width-BasePadding; x += GridStep {
			if p.free(x, y) {
				return p.decide(x, y, page, StageGrid)
			}
		}
	}

	return corner(p.fp, p.canvas, page+1, StageOverflow, len(p.rects))
}

// candidate runs the row search and falls back to a fresh row under the last
// one. The returned position is not yet clamped or checked against the canvas.
func (p *packer) candidate() (left, top float64, stage Stage) {
	rows := groupRows(p.rects, p.fp.Height+MinGap)
	limit := p.canvas.Width - BasePadding

	for _, row := range rows {
		y := row[0].Top
		for _, r := range row {
			x := r.Right() + MinGap
			if x+p.fp.Width > limit {
				break
			}
			if p.free(x, y) {
				return x, y, StageRow
			}
		}

		last := row[len(row)-1]
		if x := last.Right() + MinGap; x+p.fp.Width <= limit && p.free(x, y) {
			return x, y, StageRow
		}
	}

	lastRow := rows[len(rows)-1]
	last := lastRow[len(lastRow)-1]
	return BasePadding, last.Bottom() + MinGap, StageNewRow
}

// groupRows buckets rectangles into rows. A rectangle joins the first row whose
// first member starts less than tolerance above or below it. Rows are then
// ordered left to right internally and top to bottom by their first member.
func groupRows(rects []Rect, tolerance float64) [][]Rect {
	var rows [][]Rect
	for _, r := range rects {
		placed := false
		for i, row := range rows {
			if math.Abs(row[0].Top-r.Top) < tolerance {
				rows[i] = append(row, r)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []Rect{r})
		}
	}

	for _, row := range rows {
		slices.SortStableFunc(row, func(a, b Rect) int { return cmp.Compare(a.Left, b.Left) })
	}
	slices.SortStableFunc(rows, func(a, b []Rect) int { return cmp.Compare(a[0].Top, b[0].Top) })
	return rows
}

func (p *packer) fits(left, top float64) bool {
	return left+p.fp.Width <= p.canvas.Width-BasePadding &&
		top+p.fp.Height <= p.canvas.Height-BasePadding
}

// free reports whether a footprint at (left, top) clears every existing note.
func (p *packer) free(left, top float64) bool {
	c := Rect{Left: left, Top: top, Width: p.fp.Width, Height: p.fp.Height}
	for _, r := range p.rects {
		if c.Overlaps(r, MinGap) {
			return false
		}
	}
	return true
}

func (p *packer) decide(left, top float64, page int, stage Stage) Decision {
	r := Rect{Left: left, Top: top, Width: p.fp.Width, Height: p.fp.Height}
	return Decision{
		Placement: normalize(r, p.canvas, page),
		Stage:     stage,
		Footprint: p.fp,
		Rect:      r,
		Neighbors: len(p.rects),
	}
}

// corner puts the note at the top-left padding corner of page.
func corner(fp Footprint, c Canvas, page int, stage Stage, neighbors int) Decision {
	r := Rect{Left: BasePadding, Top: BasePadding, Width: fp.Width, Height: fp.Height}
	return Decision{
		Placement: normalize(r, c, page),
		Stage:     stage,
		Footprint: fp,
		Rect:      r,
		Neighbors: neighbors,
	}
}

// normalize converts a pixel rectangle to a normalized center, clamped so the
// whole footprint stays inside [0, 100] on both axes.
func normalize(r Rect, c Canvas, page int) Placement {
	halfW := r.Width / 2 / c.Width * 100
	halfH := r.Height / 2 / c.Height * 100
	x := r.CenterX() / c.Width * 100
	y := r.CenterY() / c.Height * 100
	return Placement{
		X:    max(halfW, min(x, 100-halfW)),
		Y:    max(halfH, min(y, 100-halfH)),
		Page: page,
	}
}
