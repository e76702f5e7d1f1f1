package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/postboard/pkg/layout"
)

// PageView is everything needed to draw one page.
type PageView struct {
	BoardID string
	Page    int
	Canvas  layout.Canvas
	Notes   []layout.Note // notes on Page, in creation order
}

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	gapOutline bool
	highlight  string
	labels     bool
}

// WithGapOutline draws the MinGap exclusion zone around each note.
func WithGapOutline() SVGOption { return func(r *svgRenderer) { r.gapOutline = true } }

// WithHighlight strokes the note with the given ID in the highlight color.
func WithHighlight(id string) SVGOption { return func(r *svgRenderer) { r.highlight = id } }

// WithoutLabels omits the index labels inside note rectangles.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

const headerHeight = 28.0

// RenderSVG draws v as a standalone SVG document.
func RenderSVG(v PageView, opts ...SVGOption) []byte {
	r := svgRenderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := v.Canvas.Width, v.Canvas.Height
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h+headerHeight, w, h+headerHeight)

	renderHeader(&buf, v)

	fmt.Fprintf(&buf, `  <g transform="translate(0, %.1f)">`+"\n", headerHeight)
	fmt.Fprintf(&buf, `    <rect class="canvas" x="0" y="0" width="%.1f" height="%.1f" fill="#fafafa" stroke="#333"/>`+"\n", w, h)
	fmt.Fprintf(&buf, `    <rect class="padding" x="%d" y="%d" width="%.1f" height="%.1f" fill="none" stroke="#bbb" stroke-dasharray="6 4"/>`+"\n",
		layout.BasePadding, layout.BasePadding, max(0, w-2*layout.BasePadding), max(0, h-2*layout.BasePadding))

	rects := make([]layout.Rect, len(v.Notes))
	for i, n := range v.Notes {
		rects[i] = layout.NoteRect(n, v.Canvas)
	}

	if r.gapOutline {
		for _, rc := range rects {
			g := rc.Expand(layout.MinGap)
			fmt.Fprintf(&buf, `    <rect class="gap" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#e0a0a0" stroke-dasharray="2 3"/>`+"\n",
				g.Left, g.Top, g.Width, g.Height)
		}
	}

	for i, n := range v.Notes {
		renderNote(&buf, &r, i, n, rects[i])
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderHeader(buf *bytes.Buffer, v PageView) {
	title := fmt.Sprintf("page %d", v.Page)
	if v.BoardID != "" {
		title = v.BoardID + " / " + title
	}
	fmt.Fprintf(buf, `  <text class="title" x="8" y="19" font-family="monospace" font-size="14">%s (%d notes)</text>`+"\n",
		html.EscapeString(title), len(v.Notes))
}

func renderNote(buf *bytes.Buffer, r *svgRenderer, i int, n layout.Note, rc layout.Rect) {
	stroke, width := "#555", 1.0
	if r.highlight != "" && n.ID == r.highlight {
		stroke, width = "#d33", 3.0
	}
	fmt.Fprintf(buf, `    <rect class="note" id="note-%d" data-id="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#fff7b0" stroke="%s" stroke-width="%.0f"/>`+"\n",
		i, html.EscapeString(n.ID), rc.Left, rc.Top, rc.Width, rc.Height, stroke, width)
	if r.labels {
		fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="12">#%d · %d</text>`+"\n",
			rc.CenterX(), rc.CenterY()+4, i, n.TextLength)
	}
}
