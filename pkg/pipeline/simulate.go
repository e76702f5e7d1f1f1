package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/layout"
	"github.com/matzehuels/postboard/pkg/observability"
)

// Simulate adds notes to a board one at a time, each on the board's current
// last page, exactly as successive real submissions would. Every placement
// sees all earlier ones. The cache is not consulted.
func (r *Runner) Simulate(ctx context.Context, opts SimulateOptions) (*SimulateResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()

	snap := opts.Snapshot
	notes := snap.Layout()
	startPages := layout.Paginate(notes)
	lastPage := startPages.MaxPage

	created := opts.Start.UnixMilli()
	if len(notes) > 0 {
		created = max(created, notes[len(notes)-1].CreatedAtMillis+1)
	}

	res := &SimulateResult{Stages: make(map[string]int)}
	for i, length := range opts.Lengths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		d, err := layout.PlaceDetailed(notes, opts.canvas, length, lastPage)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		p := d.Placement
		if opts.PageLimit > 0 && p.Page >= opts.PageLimit {
			res.Truncated = true
			r.Logger.Debug("page limit reached", "note", i, "page", p.Page, "limit", opts.PageLimit)
			break
		}
		if d.Overflowed() {
			res.Overflows = append(res.Overflows, Overflow{Index: i, From: lastPage, To: p.Page})
			observability.Placement().OnOverflow(ctx, snap.Board.ID, lastPage, p.Page)
		}

		rec := board.Record{
			ID:        uuid.NewString(),
			Nickname:  opts.Nickname,
			Message:   filler(length),
			X:         p.X,
			Y:         p.Y,
			Page:      board.PageOf(p.Page),
			CreatedAt: board.Timestamp(created),
		}
		snap = snap.Append(rec)
		notes = append(notes, layout.Note{
			ID:              rec.ID,
			TextLength:      length,
			X:               p.X,
			Y:               p.Y,
			Page:            p.Page,
			CreatedAtMillis: created,
		})
		created++
		lastPage = max(lastPage, p.Page)

		res.Notes = append(res.Notes, SimulatedNote{ID: rec.ID, TextLength: length, Placement: p, Stage: d.Stage})
		res.Stages[string(d.Stage)]++
	}

	res.Snapshot = snap
	res.PagesCreated = lastPage - startPages.MaxPage
	res.Duration = time.Since(start)

	r.Logger.Info("simulated notes",
		"added", len(res.Notes),
		"overflows", len(res.Overflows),
		"pages", lastPage+1,
		"duration", res.Duration)
	return res, nil
}

// filler returns a message of n glyphs.
func filler(n int) string {
	const phrase = "keep going "
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(phrase)
	}
	return b.String()[:n]
}
