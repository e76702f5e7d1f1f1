// Package pipeline drives the layout engine the way a board service does:
// load a snapshot, normalize it, place a note, and report where it went.
//
// Both the CLI and the HTTP server go through a [Runner], so caching, logging,
// defaults, and validation behave the same from either entry point.
//
// # Operations
//
//   - [Runner.Place] computes the position of one new note.
//   - [Runner.Paginate] summarizes how a board's notes spread over pages.
//   - [Runner.Simulate] packs a sequence of notes one after another, each one
//     seeing all earlier placements.
//   - [Runner.Preview] renders one page as SVG.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Place(ctx, pipeline.PlaceRequest{
//	    Snapshot: snap,
//	    Message:  "you got this",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Placement.X, res.Placement.Y, res.Placement.Page)
//
// The runner never writes notes anywhere. Persisting the returned placement is
// the caller's job, and two callers placing against the same snapshot receive
// the same position.
package pipeline

import (
	"time"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCanvasWidth is the board width in pixels when neither the request
	// nor the snapshot names one.
	DefaultCanvasWidth = 1400.0

	// DefaultCanvasHeight is the default board height in pixels.
	DefaultCanvasHeight = 800.0

	// DefaultSimulateCount is the number of notes simulated when no lengths
	// are given.
	DefaultSimulateCount = layout.NotesPerPage

	// MaxSimulateNotes caps a single simulation.
	MaxSimulateNotes = 10000
)

// DefaultCanvas returns the default canvas.
func DefaultCanvas() layout.Canvas {
	return layout.Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
}

// resolveCanvas picks the canvas for a request: explicit dimensions first,
// then the snapshot's recorded canvas, then the defaults. A zero dimension
// falls through on its own.
func resolveCanvas(width, height float64, snap *board.Snapshot) layout.Canvas {
	c := DefaultCanvas()
	if snap != nil {
		c = snap.Canvas(c)
	}
	if width != 0 {
		c.Width = width
	}
	if height != 0 {
		c.Height = height
	}
	return c
}

// =============================================================================
// Place
// =============================================================================

// PlaceRequest asks for the position of one new note.
type PlaceRequest struct {
	Snapshot *board.Snapshot `json:"snapshot"`

	// Width and Height override the snapshot's canvas when non-zero.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Message is the note text. TextLength, when set, is used instead.
	Message    string `json:"message,omitempty"`
	TextLength *int   `json:"text_length,omitempty"`

	// Page is the page to place on. Nil means the board's last page.
	Page *int `json:"page,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	canvas    layout.Canvas
	length    int
	validated bool
}

// ValidateAndSetDefaults resolves the canvas and text length and checks the
// request. It is idempotent.
func (r *PlaceRequest) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}
	if r.Snapshot == nil {
		r.Snapshot = &board.Snapshot{}
	}

	r.canvas = resolveCanvas(r.Width, r.Height, r.Snapshot)
	if err := r.canvas.Validate(); err != nil {
		return err
	}

	r.length = board.TextLength(r.Message)
	if r.TextLength != nil {
		r.length = *r.TextLength
	} else if r.Message != "" {
		if err := errors.ValidateMessage(r.Message); err != nil {
			return err
		}
	}
	if err := errors.ValidateTextLength(r.length); err != nil {
		return err
	}

	if r.Page != nil {
		if err := errors.ValidatePage(*r.Page); err != nil {
			return err
		}
	}
	r.validated = true
	return nil
}

// Canvas returns the resolved canvas. Valid after ValidateAndSetDefaults.
func (r *PlaceRequest) Canvas() layout.Canvas { return r.canvas }

// Length returns the resolved text length. Valid after ValidateAndSetDefaults.
func (r *PlaceRequest) Length() int { return r.length }

// PlaceResult is the answer to a PlaceRequest.
type PlaceResult struct {
	BoardID       string           `json:"board_id,omitempty"`
	Placement     layout.Placement `json:"placement"`
	RequestedPage int              `json:"requested_page"`
	Stage         layout.Stage     `json:"stage"`
	Overflowed    bool             `json:"overflowed"`
	Footprint     layout.Footprint `json:"footprint"`
	Rect          layout.Rect      `json:"rect"`
	Canvas        layout.Canvas    `json:"canvas"`
	TextLength    int              `json:"text_length"`
	Stats         Stats            `json:"stats"`
	CacheHit      bool             `json:"cache_hit"`
}

// Stats describes the board a placement was computed against.
type Stats struct {
	TotalNotes  int           `json:"total_notes"`
	NotesOnPage int           `json:"notes_on_page"`
	PageCount   int           `json:"page_count"`
	Duration    time.Duration `json:"duration_ns"`
}

// =============================================================================
// Paginate
// =============================================================================

// PageInfo describes one page of a board.
type PageInfo struct {
	Page   int `json:"page"`
	Notes  int `json:"notes"`
	Glyphs int `json:"glyphs"`
}

// PageSummary describes how a board's notes spread across pages. Pages
// holds every page from 0 to LastPage, including empty ones.
type PageSummary struct {
	BoardID    string     `json:"board_id,omitempty"`
	Pages      []PageInfo `json:"pages"`
	PageCount  int        `json:"page_count"`
	LastPage   int        `json:"last_page"`
	TotalNotes int        `json:"total_notes"`
}

// =============================================================================
// Simulate
// =============================================================================

// SimulateOptions configures a sequential packing run.
type SimulateOptions struct {
	// Snapshot is the starting board. Nil starts from an empty board.
	Snapshot *board.Snapshot `json:"snapshot,omitempty"`

	// Lengths are the text lengths of the notes to add, in order. When empty,
	// Count notes of Length glyphs are added.
	Lengths []int `json:"lengths,omitempty"`
	Count   int   `json:"count,omitempty"`
	Length  int   `json:"length,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// PageLimit stops the run before the first note that would land on page
	// PageLimit or later. Zero means no limit.
	PageLimit int `json:"page_limit,omitempty"`

	// Nickname is stamped on every simulated record.
	Nickname string `json:"nickname,omitempty"`

	// Start is the creation time of the first simulated note. Zero means now.
	Start time.Time `json:"-"`

	canvas    layout.Canvas
	validated bool
}

// ValidateAndSetDefaults fills in defaults and checks the options. It is
// idempotent.
func (o *SimulateOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Snapshot == nil {
		o.Snapshot = &board.Snapshot{}
	}
	if len(o.Lengths) == 0 {
		if o.Count == 0 {
			o.Count = DefaultSimulateCount
		}
		if o.Count < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "count must be non-negative, got %d", o.Count)
		}
		o.Lengths = make([]int, o.Count)
		for i := range o.Lengths {
			o.Lengths[i] = o.Length
		}
	}
	if len(o.Lengths) > MaxSimulateNotes {
		return errors.New(errors.ErrCodeInvalidInput, "too many notes to simulate (%d > %d)", len(o.Lengths), MaxSimulateNotes)
	}
	for i, n := range o.Lengths {
		if err := errors.ValidateTextLength(n); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTextLength, err, "note %d", i)
		}
	}
	if o.PageLimit < 0 {
		return errors.New(errors.ErrCodeInvalidPage, "page limit must be non-negative, got %d", o.PageLimit)
	}
	if o.Nickname == "" {
		o.Nickname = "sim"
	}
	if err := errors.ValidateNickname(o.Nickname); err != nil {
		return err
	}
	if o.Start.IsZero() {
		o.Start = time.Now()
	}

	o.canvas = resolveCanvas(o.Width, o.Height, o.Snapshot)
	if err := o.canvas.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SimulatedNote is one note added by a simulation.
type SimulatedNote struct {
	ID         string           `json:"id"`
	TextLength int              `json:"text_length"`
	Placement  layout.Placement `json:"placement"`
	Stage      layout.Stage     `json:"stage"`
}

// Overflow records a note that spilled past the page it asked for.
type Overflow struct {
	Index int `json:"index"`
	From  int `json:"from"`
	To    int `json:"to"`
}

// SimulateResult is the outcome of a simulation.
type SimulateResult struct {
	Snapshot     *board.Snapshot `json:"snapshot"`
	Notes        []SimulatedNote `json:"notes"`
	Overflows    []Overflow      `json:"overflows,omitempty"`
	PagesCreated int             `json:"pages_created"`
	Truncated    bool            `json:"truncated,omitempty"`
	Stages       map[string]int  `json:"stages"`
	Duration     time.Duration   `json:"duration_ns"`
}

// =============================================================================
// Preview
// =============================================================================

// PreviewOptions configures Runner.Preview.
type PreviewOptions struct {
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	GapOutline bool    `json:"gap_outline,omitempty"`
	Highlight  string  `json:"highlight,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`
}
