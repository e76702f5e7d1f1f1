package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/cache"
	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/layout"
	"github.com/matzehuels/postboard/pkg/observability"
	"github.com/matzehuels/postboard/pkg/render"
	"golang.org/x/sync/errgroup"
)

const previewWorkers = 4

// Preview renders one page of snap as SVG and reports whether it came from
// the cache. Pages past the board's last page are PAGE_NOT_FOUND; empty pages
// before it render as an empty canvas.
func (r *Runner) Preview(ctx context.Context, snap *board.Snapshot, page int, opts PreviewOptions) ([]byte, bool, error) {
	if snap == nil {
		snap = &board.Snapshot{}
	}
	if err := errors.ValidatePage(page); err != nil {
		return nil, false, err
	}
	canvas := resolveCanvas(opts.Width, opts.Height, snap)
	if err := canvas.Validate(); err != nil {
		return nil, false, err
	}

	pages := layout.Paginate(snap.Layout())
	if page >= pages.Count() {
		return nil, false, errors.New(errors.ErrCodePageNotFound, "page %d does not exist (board has %d)", page, pages.Count())
	}
	onPage := pages.Page(page)

	key := r.Keyer.PreviewKey(snap.Board.ID, page, cache.PreviewKeyOpts{
		NotesHash:  cache.HashJSON(onPage),
		Width:      canvas.Width,
		Height:     canvas.Height,
		GapOutline: opts.GapOutline,
		Highlight:  opts.Highlight,
	})

	var svg []byte
	if !opts.Refresh && r.lookup(ctx, "preview", key, &svg) {
		return svg, true, nil
	}

	start := time.Now()
	var svgOpts []render.SVGOption
	if opts.GapOutline {
		svgOpts = append(svgOpts, render.WithGapOutline())
	}
	if opts.Highlight != "" {
		svgOpts = append(svgOpts, render.WithHighlight(opts.Highlight))
	}
	svg = render.RenderSVG(render.PageView{
		BoardID: snap.Board.ID,
		Page:    page,
		Canvas:  canvas,
		Notes:   onPage,
	}, svgOpts...)

	r.store(ctx, "preview", key, svg, cache.TTLPreview)
	observability.Placement().OnPreviewRendered(ctx, snap.Board.ID, page, len(svg), time.Since(start))
	r.Logger.Debug("rendered preview", "board", snap.Board.ID, "page", page, "bytes", len(svg))
	return svg, false, nil
}

// PreviewAll renders every page of snap concurrently and returns them in
// page order.
func (r *Runner) PreviewAll(ctx context.Context, snap *board.Snapshot, opts PreviewOptions) ([][]byte, error) {
	if snap == nil {
		snap = &board.Snapshot{}
	}
	count := layout.Paginate(snap.Layout()).Count()
	out := make([][]byte, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(previewWorkers)
	for p := range count {
		g.Go(func() error {
			svg, _, err := r.Preview(ctx, snap, p, opts)
			if err != nil {
				return fmt.Errorf("page %d: %w", p, err)
			}
			out[p] = svg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
