// Package layout places sticky notes on a fixed-size board canvas.
//
// # Overview
//
// A board shows short notes scattered over a canvas. Each note has a
// rectangular footprint derived from its text length. This package computes
// where a new note goes so that it does not overlap the notes already on the
// same page, and moves it to the next page when the current one is full.
//
// The package is pure: [Place] reads only its arguments and returns a value.
// It performs no I/O, holds no state and never caches. Callers supply the
// snapshot of existing notes and persist the result themselves.
//
// # Coordinates
//
// Notes store their position as the normalized center of their footprint,
// expressed as a percentage of the canvas width and height. Packing works in
// pixel space on top-left anchored [Rect] values and converts back at the end.
//
// # Footprints
//
// [EstimateFootprint] approximates the rendered size of a note from its glyph
// count using a monospaced character width. It never measures text, so the
// packer leaves a generous gap between notes.
//
// # Packing
//
// [Place] runs these stages in order, returning on the first success:
//
//  1. Keep only the notes on the requested page (creation order).
//  2. An empty page puts the note at the top-left padding corner.
//  3. Group existing rectangles into rows and try the slot right of each one.
//  4. Otherwise open a new row below the last one.
//  5. Clamp into the padded canvas and re-check for overlap.
//  6. Otherwise sweep a 20px grid, row-major.
//  7. Otherwise spill to the next page at the top-left corner.
//
// The overlap test expands both rectangles by [MinGap], so two accepted notes
// are always more than twice that apart. Placement never fails for lack of
// room. Only malformed input (non-positive canvas, negative text length or
// page) returns an error.
//
// # Pages
//
// [Paginate] groups notes by page for display, and [PlaceNext] places onto
// the last page the way the board service does when a visitor submits a
// note.
//
// # Concurrency
//
// Two callers placing against the same snapshot get the same answer and may
// therefore overlap once both are stored. The package does not serialize
// placements; the caller owns that race.
package layout
