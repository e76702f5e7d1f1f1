package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/pipeline"
)

// simulateCommand creates the simulate command, which fills a board with
// generated notes.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		input      string
		output     string
		lengthsStr string
		jsonOut    bool
		width      float64
		height     float64
	)
	opts := pipeline.SimulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Fill a board with generated notes",
		Long: `Fill a board with generated notes, one at a time.

Each note is placed on the board's current last page with every earlier note
in view, the way successive submissions arrive. Use --lengths for an exact
sequence of text lengths, or --count and --length for a uniform run.

The resulting snapshot is written to -o and can be fed to the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lengths, err := parseLengths(lengthsStr)
			if err != nil {
				return err
			}
			opts.Lengths = lengths
			return c.runSimulate(cmd.Context(), input, output, width, height, opts, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "starting snapshot (default: empty board)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resulting snapshot here")
	cmd.Flags().StringVar(&lengthsStr, "lengths", "", "comma-separated text lengths, e.g. 0,40,100")
	cmd.Flags().IntVarP(&opts.Count, "count", "n", pipeline.DefaultSimulateCount, "number of notes (without --lengths)")
	cmd.Flags().IntVar(&opts.Length, "length", 0, "text length of each note (without --lengths)")
	cmd.Flags().IntVar(&opts.PageLimit, "page-limit", 0, "stop before a note would land on this page (0: no limit)")
	cmd.Flags().StringVar(&opts.Nickname, "nickname", "sim", "author of the generated notes")
	cmd.Flags().Float64Var(&width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "canvas height in pixels")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the placements as JSON")
	cmd.MarkFlagsMutuallyExclusive("lengths", "count")
	cmd.MarkFlagsMutuallyExclusive("lengths", "length")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, input, output string, width, height float64, opts pipeline.SimulateOptions, jsonOut bool) error {
	snap := &board.Snapshot{}
	if input != "" {
		s, err := loadSnapshot(input)
		if err != nil {
			return err
		}
		snap = s
	}
	opts.Snapshot = snap

	var err error
	if opts.Width, opts.Height, err = c.canvasFlags(snap, width, height); err != nil {
		return err
	}

	// Simulation never reads the cache.
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Packing notes...")
	if !jsonOut {
		spinner.Start()
	}
	res, err := runner.Simulate(ctx, opts)
	if err != nil {
		spinner.StopWithError("Simulation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Packed %s", plural(len(res.Notes), "note")))

	if output != "" {
		if err := board.ExportJSON(res.Snapshot, output); err != nil {
			return fmt.Errorf("write snapshot %s: %w", output, err)
		}
	}

	if jsonOut {
		return writeJSON(res)
	}

	printSuccess("Placed %s", plural(len(res.Notes), "note"))
	for _, o := range res.Overflows {
		printDetail("note %d overflowed from page %d to page %d", o.Index, o.From, o.To)
	}
	if res.Truncated {
		printWarning("Stopped at page limit %d", opts.PageLimit)
	}
	printStats(stageCounts(res.Stages), false)
	if output != "" {
		printFile(output)
		printNewline()
		printNextStep("Inspect", fmt.Sprintf("%s pages %s", appName, output))
	}
	return nil
}

// parseLengths parses "0,40,100". An empty string yields nil.
func parseLengths(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTextLength, err, "bad length %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// stageCounts formats per-stage counts in packing order.
func stageCounts(stages map[string]int) []string {
	order := []string{"empty-page", "row", "new-row", "grid", "overflow"}
	var out []string
	for _, s := range order {
		if n := stages[s]; n > 0 {
			out = append(out, fmt.Sprintf("%d %s", n, s))
		}
	}
	return out
}
