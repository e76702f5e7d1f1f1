// Package pkg holds the postboard libraries.
//
// # Overview
//
// Postboard decides where a new sticky note goes on a paged message board.
// The libraries split into:
//
//  1. [layout] - the placement engine: note sizing, packing, pagination
//  2. [board] - board snapshots as the board service stores them
//  3. [pipeline] - orchestration with caching (place, paginate, simulate, preview)
//  4. [cache] - file, Redis, and no-op caches with page-scoped keys
//  5. [render] - SVG previews of a page for debugging placements
//  6. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Data Flow
//
//	snapshot.json
//	     ↓
//	[board] package (decode, normalize legacy records)
//	     ↓
//	[pipeline] package (cache lookup)
//	     ↓
//	[layout] package (pack onto the requested page, spill to the next)
//	     ↓
//	placement (x%, y%, page)
//
// # Quick Start
//
//	snap, _ := board.ImportJSON("board.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Place(ctx, pipeline.PlaceRequest{
//	    Snapshot: snap,
//	    Message:  "see you at the reunion!",
//	})
//	fmt.Println(res.Placement.X, res.Placement.Y, res.Placement.Page)
//
// The layout package can also be used on its own; it has no I/O and no
// dependencies beyond the standard library.
//
// [layout]: github.com/matzehuels/postboard/pkg/layout
// [board]: github.com/matzehuels/postboard/pkg/board
// [pipeline]: github.com/matzehuels/postboard/pkg/pipeline
// [cache]: github.com/matzehuels/postboard/pkg/cache
// [render]: github.com/matzehuels/postboard/pkg/render
// [errors]: github.com/matzehuels/postboard/pkg/errors
// [observability]: github.com/matzehuels/postboard/pkg/observability
// [buildinfo]: github.com/matzehuels/postboard/pkg/buildinfo
package pkg
