package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/pipeline"
)

type placeFlags struct {
	message  string
	length   int
	page     int
	width    float64
	height   float64
	nickname string
	appendTo string
	jsonOut  bool
	noCache  bool
	refresh  bool
}

// placeCommand creates the place command, which computes the position of
// one new note.
func (c *CLI) placeCommand() *cobra.Command {
	var f placeFlags

	cmd := &cobra.Command{
		Use:   "place [snapshot.json]",
		Short: "Compute where a new note goes",
		Long: `Compute where a new note goes on a board.

The snapshot is a JSON file holding the board's existing notes ("-" reads
stdin). The note is sized from --message, or from --length when only its
glyph count is known, and placed on the board's last page unless --page is
given. A full page sends the note to the next page.

With --append the new note is written back into a copy of the snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pipeline.PlaceRequest{Message: f.message}
			if cmd.Flags().Changed("length") {
				req.TextLength = &f.length
			}
			if cmd.Flags().Changed("page") {
				req.Page = &f.page
			}
			req.Refresh = f.refresh
			return c.runPlace(cmd.Context(), args[0], req, f)
		},
	}

	cmd.Flags().StringVarP(&f.message, "message", "m", "", "note text")
	cmd.Flags().IntVarP(&f.length, "length", "l", 0, "text length in glyphs (instead of --message)")
	cmd.Flags().IntVarP(&f.page, "page", "p", 0, "page to place on (default: last page)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width in pixels (default: snapshot, config, or 1400)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height in pixels (default: snapshot, config, or 800)")
	cmd.Flags().StringVar(&f.nickname, "nickname", "anonymous", "author stored with --append")
	cmd.Flags().StringVarP(&f.appendTo, "append", "a", "", "write the snapshot with the new note to this file")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
	cmd.MarkFlagsMutuallyExclusive("message", "length")

	return cmd
}

// runPlace loads the snapshot, places the note, and reports the result.
func (c *CLI) runPlace(ctx context.Context, input string, req pipeline.PlaceRequest, f placeFlags) error {
	snap, err := loadSnapshot(input)
	if err != nil {
		return err
	}
	req.Snapshot = snap
	if req.Width, req.Height, err = c.canvasFlags(snap, f.width, f.height); err != nil {
		return err
	}
	if f.appendTo != "" && req.Message == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--append needs --message")
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Place(ctx, req)
	if err != nil {
		return err
	}

	if f.appendTo != "" {
		if err := appendNote(snap, res, req.Message, f); err != nil {
			return err
		}
	}

	if f.jsonOut {
		return writeJSON(res)
	}

	p := res.Placement
	printSuccess("Placed note at (%s, %s) on page %s",
		StyleNumber.Render(fmt.Sprintf("%.2f", p.X)),
		StyleNumber.Render(fmt.Sprintf("%.2f", p.Y)),
		StyleNumber.Render(fmt.Sprint(p.Page)))
	if res.Overflowed {
		printWarning("Page %d is full, note moved to page %d", res.RequestedPage, p.Page)
	}
	printStats([]string{
		string(res.Stage),
		fmt.Sprintf("%.0fx%.0f px", res.Footprint.Width, res.Footprint.Height),
		plural(res.Stats.NotesOnPage, "note") + " on page",
		plural(res.Stats.PageCount, "page"),
	}, res.CacheHit)
	if f.appendTo != "" {
		printFile(f.appendTo)
		printNewline()
		printNextStep("Preview", fmt.Sprintf("%s preview %s --page %d", appName, f.appendTo, p.Page))
	}
	return nil
}

// appendNote writes snap plus the placed note to f.appendTo.
func appendNote(snap *board.Snapshot, res *pipeline.PlaceResult, message string, f placeFlags) error {
	if err := errors.ValidateNickname(f.nickname); err != nil {
		return err
	}
	created := board.FromTime(time.Now())
	for _, r := range snap.Notes {
		created = max(created, r.CreatedAt+1)
	}
	out := snap.Append(board.Record{
		ID:        uuid.NewString(),
		Nickname:  f.nickname,
		Message:   message,
		X:         res.Placement.X,
		Y:         res.Placement.Y,
		Page:      board.PageOf(res.Placement.Page),
		CreatedAt: created,
	})
	if err := board.ExportJSON(out, f.appendTo); err != nil {
		return fmt.Errorf("write snapshot %s: %w", f.appendTo, err)
	}
	return nil
}
