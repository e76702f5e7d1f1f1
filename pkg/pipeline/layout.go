package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/cache"
	"github.com/matzehuels/postboard/pkg/layout"
	"github.com/matzehuels/postboard/pkg/observability"
)

// =============================================================================
// Placement
// =============================================================================

// Place computes where a new note goes.
//
// The request's snapshot is normalized first, so legacy notes without a page
// take part on their derived page. With no explicit page the note targets the
// board's last page. Results are cached per board page; the key covers only
// the notes on the requested page, the canvas, and the text length.
func (r *Runner) Place(ctx context.Context, req PlaceRequest) (*PlaceResult, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	start := time.Now()

	notes := req.Snapshot.Layout()
	pages := layout.Paginate(notes)
	page := pages.MaxPage
	if req.Page != nil {
		page = *req.Page
	}
	boardID := req.Snapshot.Board.ID
	onPage := pages.Page(page)

	observability.Placement().OnPlaceStart(ctx, boardID, page, req.Length())

	key := r.Keyer.PlacementKey(boardID, page, cache.PlacementKeyOpts{
		NotesHash:  cache.HashJSON(onPage),
		Width:      req.Canvas().Width,
		Height:     req.Canvas().Height,
		TextLength: req.Length(),
	})

	var d layout.Decision
	hit := !req.Refresh && r.lookup(ctx, "place", key, &d)
	if !hit {
		var err error
		d, err = layout.PlaceDetailed(onPage, req.Canvas(), req.Length(), page)
		if err != nil {
			observability.Placement().OnPlaceComplete(ctx, observability.PlaceEvent{
				BoardID: boardID, RequestedPage: page,
			}, time.Since(start), err)
			return nil, fmt.Errorf("place: %w", err)
		}
		if data, err := json.Marshal(d); err == nil {
			r.store(ctx, "place", key, data, cache.TTLPlacement)
		}
	}

	res := &PlaceResult{
		BoardID:       boardID,
		Placement:     d.Placement,
		RequestedPage: page,
		Stage:         d.Stage,
		Overflowed:    d.Overflowed(),
		Footprint:     d.Footprint,
		Rect:          d.Rect,
		Canvas:        req.Canvas(),
		TextLength:    req.Length(),
		CacheHit:      hit,
		Stats: Stats{
			TotalNotes:  len(notes),
			NotesOnPage: len(onPage),
			PageCount:   pages.Count(),
			Duration:    time.Since(start),
		},
	}

	observability.Placement().OnPlaceComplete(ctx, observability.PlaceEvent{
		BoardID:       boardID,
		RequestedPage: page,
		Page:          d.Placement.Page,
		Stage:         string(d.Stage),
		Neighbors:     d.Neighbors,
	}, res.Stats.Duration, nil)
	if res.Overflowed {
		observability.Placement().OnOverflow(ctx, boardID, page, d.Placement.Page)
	}

	r.Logger.Info("placed note",
		"board", boardID,
		"page", d.Placement.Page,
		"x", fmt.Sprintf("%.2f", d.Placement.X),
		"y", fmt.Sprintf("%.2f", d.Placement.Y),
		"stage", d.Stage,
		"cached", hit)
	return res, nil
}

// =============================================================================
// Pagination
// =============================================================================

// Paginate summarizes the pages of a snapshot. A board without notes has one
// empty page.
func (r *Runner) Paginate(ctx context.Context, snap *board.Snapshot) (*PageSummary, error) {
	if snap == nil {
		snap = &board.Snapshot{}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := snap.Layout()
	pages := layout.Paginate(notes)

	sum := &PageSummary{
		BoardID:    snap.Board.ID,
		Pages:      make([]PageInfo, pages.Count()),
		PageCount:  pages.Count(),
		LastPage:   pages.MaxPage,
		TotalNotes: len(notes),
	}
	for p := range sum.Pages {
		info := PageInfo{Page: p}
		for _, n := range pages.Page(p) {
			info.Notes++
			info.Glyphs += n.TextLength
		}
		sum.Pages[p] = info
	}

	r.Logger.Debug("paginated board", "board", sum.BoardID, "notes", sum.TotalNotes, "pages", sum.PageCount)
	return sum, nil
}
