package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/layout"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// browseCommand creates the browse command, an interactive page viewer.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [snapshot.json]",
		Short: "Browse a board page by page",
		Long: `Browse a board page by page in the terminal.

Left and right switch pages, up and down move through the notes of the page.
Enter selects a note and prints its placement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(NewBoardBrowserModel(snap), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			m, ok := final.(BoardBrowserModel)
			if !ok || m.Selected == nil {
				printDetail("No note selected")
				return nil
			}

			n := m.Selected
			printSuccess("Note %s", n.ID)
			printKeyValue("Page", fmt.Sprint(n.Page))
			printKeyValue("Position", fmt.Sprintf("%.2f, %.2f", n.X, n.Y))
			printKeyValue("Glyphs", fmt.Sprint(n.TextLength))
			fp := layout.EstimateFootprint(n.TextLength)
			printKeyValue("Size", fmt.Sprintf("%.0f x %.0f px", fp.Width, fp.Height))
			printNewline()
			printNextStep("Preview", fmt.Sprintf("%s preview %s --page %d --highlight %s", appName, args[0], n.Page, n.ID))
			return nil
		},
	}
}

// =============================================================================
// BoardBrowserModel - Interactive page browser
// =============================================================================

// BoardBrowserModel is the bubbletea model for browsing a board's pages.
type BoardBrowserModel struct {
	BoardID  string
	Pages    layout.Pages
	Records  map[string]board.Record
	Page     int
	Cursor   int
	Offset   int
	Height   int
	Selected *layout.Note
}

// NewBoardBrowserModel creates a browser positioned on the board's last page.
func NewBoardBrowserModel(snap *board.Snapshot) BoardBrowserModel {
	records := make(map[string]board.Record, len(snap.Notes))
	for _, r := range snap.Notes {
		records[r.ID] = r
	}
	pages := layout.Paginate(snap.Layout())
	return BoardBrowserModel{
		BoardID: snap.Board.ID,
		Pages:   pages,
		Records: records,
		Page:    pages.MaxPage,
		Height:  12,
	}
}

func (m BoardBrowserModel) Init() tea.Cmd {
	return nil
}

func (m BoardBrowserModel) notes() []layout.Note {
	return m.Pages.Page(m.Page)
}

func (m BoardBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Page > 0 {
				m.Page--
				m.Cursor, m.Offset = 0, 0
			}
		case "right", "l":
			if m.Page < m.Pages.MaxPage {
				m.Page++
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Offset = min(m.Offset, m.Cursor)
			}
		case "down", "j":
			if m.Cursor < len(m.notes())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			notes := m.notes()
			if len(notes) == 0 {
				return m, nil
			}
			n := notes[m.Cursor]
			m.Selected = &n
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m BoardBrowserModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Page %d (last %d)", m.Page, m.Pages.MaxPage)
	if m.BoardID != "" {
		title = m.BoardID + " · " + title
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ page  ↑/↓ note  ⏎ select  q quit"))
	b.WriteString("\n\n")

	notes := m.notes()
	if len(notes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty page)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(notes))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		n := notes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		r := m.Records[n.ID]
		rows = append(rows, []string{
			cursor,
			shortID(n.ID),
			cmpNickname(r.Nickname),
			fmt.Sprintf("%5.1f", n.X),
			fmt.Sprintf("%5.1f", n.Y),
			fmt.Sprint(n.TextLength),
			formatRelativeTime(r.CreatedAt),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Note", "Author", "X", "Y", "Glyphs", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(notes))))
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func shortID(id string) string {
	if id == "" {
		return "—"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func cmpNickname(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func formatRelativeTime(ts board.Timestamp) string {
	if ts == 0 {
		return "—"
	}
	t := ts.Time()
	diff := time.Since(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
