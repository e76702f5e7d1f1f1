package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/pipeline"
)

// pagesCommand creates the pages command, which lists a board's pages.
func (c *CLI) pagesCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "pages [snapshot.json]",
		Short: "List the pages of a board",
		Long: `List the pages of a board with the number of notes on each.

Notes without a stored page are assigned to a page by creation order, twenty
to a page, exactly as placement sees them. The last page is where the next
note goes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPages(cmd.Context(), args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the summary as JSON")

	return cmd
}

func (c *CLI) runPages(ctx context.Context, input string, jsonOut bool) error {
	snap, err := loadSnapshot(input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	sum, err := runner.Paginate(ctx, snap)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(sum)
	}

	title := "Pages"
	if sum.BoardID != "" {
		title = "Pages of " + sum.BoardID
	}
	fmt.Println(StyleTitle.Render(title))
	fmt.Println(pagesTable(sum))
	printDetail("%s on %s, next note goes to page %d",
		plural(sum.TotalNotes, "note"), plural(sum.PageCount, "page"), sum.LastPage)
	return nil
}

// pagesTable renders one row per page. The last page is highlighted.
func pagesTable(sum *pipeline.PageSummary) string {
	rows := make([][]string, 0, len(sum.Pages))
	for _, p := range sum.Pages {
		rows = append(rows, []string{strconv.Itoa(p.Page), strconv.Itoa(p.Notes), strconv.Itoa(p.Glyphs)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Notes", "Glyphs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case row < len(sum.Pages) && sum.Pages[row].Page == sum.LastPage:
				return cellStyle.Foreground(colorCyan).Bold(true)
			case row < len(sum.Pages) && sum.Pages[row].Notes == 0:
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		}).
		Render()
}
