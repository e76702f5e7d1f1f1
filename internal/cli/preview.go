package cli

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/pipeline"
)

type previewFlags struct {
	page       int
	all        bool
	output     string
	width      float64
	height     float64
	gapOutline bool
	highlight  string
	noCache    bool
}

// previewCommand creates the preview command, which draws board pages as SVG.
func (c *CLI) previewCommand() *cobra.Command {
	var f previewFlags

	cmd := &cobra.Command{
		Use:   "preview [snapshot.json]",
		Short: "Draw board pages as SVG",
		Long: `Draw board pages as SVG for inspecting placements.

Each note is drawn at its estimated size. --gaps adds the clearance zone
the packer keeps around every note, and --highlight marks one note by ID.

With --all every page is rendered concurrently; -o is then a base path and
pages are written as <base>.page<N>.svg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().IntVarP(&f.page, "page", "p", 0, "page to draw")
	cmd.Flags().BoolVar(&f.all, "all", false, "draw every page")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <input>.page<N>.svg)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height in pixels")
	cmd.Flags().BoolVar(&f.gapOutline, "gaps", false, "outline the clearance around each note")
	cmd.Flags().StringVar(&f.highlight, "highlight", "", "ID of a note to highlight")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.MarkFlagsMutuallyExclusive("page", "all")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, f previewFlags) error {
	snap, err := loadSnapshot(input)
	if err != nil {
		return err
	}
	opts := pipeline.PreviewOptions{GapOutline: f.gapOutline, Highlight: f.highlight}
	if opts.Width, opts.Height, err = c.canvasFlags(snap, f.width, f.height); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	src := cmp.Or(f.output, input)
	if src == "-" {
		src = "board"
	}
	base := strings.TrimSuffix(src, filepath.Ext(src))

	if !f.all {
		svg, cached, err := runner.Preview(ctx, snap, f.page, opts)
		if err != nil {
			return err
		}
		path := f.output
		if path == "" {
			path = pagePath(base, f.page)
		}
		if err := os.WriteFile(path, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Rendered page %d", f.page)
		printFile(path)
		printStats([]string{fmt.Sprintf("%d bytes", len(svg))}, cached)
		return nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering pages...")
	spinner.Start()
	pages, err := runner.PreviewAll(ctx, snap, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	for i, svg := range pages {
		path := pagePath(base, i)
		if err := os.WriteFile(path, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printSuccess("Rendered %s", plural(len(pages), "page"))
	return nil
}

func pagePath(base string, page int) string {
	return fmt.Sprintf("%s.page%d.svg", base, page)
}
