package cli

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/layout"
	"github.com/matzehuels/postboard/pkg/pipeline"
)

// runCLI executes the root command with a throwaway config and cache.
func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	cfg := writeFile(t, dir, "config.toml", "[cache]\nbackend = \"file\"\n")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	return root.ExecuteContext(context.Background())
}

func writeSnapshot(t *testing.T, snap *board.Snapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.json")
	if err := board.ExportJSON(snap, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"place", "pages", "simulate", "preview", "browse", "serve", "cache", "config", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestPlaceAppend(t *testing.T) {
	in := writeSnapshot(t, &board.Snapshot{Board: board.BoardInfo{ID: "b1"}})
	out := filepath.Join(t.TempDir(), "next.json")

	if err := runCLI(t, "place", in, "-m", "hello there", "--append", out, "--nickname", "mina"); err != nil {
		t.Fatalf("place: %v", err)
	}

	snap, err := board.ImportJSON(out)
	if err != nil {
		t.Fatalf("read appended snapshot: %v", err)
	}
	if len(snap.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(snap.Notes))
	}
	n := snap.Notes[0]
	if n.Nickname != "mina" || n.Message != "hello there" || n.ID == "" {
		t.Errorf("record = %+v", n)
	}
	if n.Page == nil || *n.Page != 0 || math.Abs(n.X-90.0/1400*100) > 1e-9 || n.Y != 10 {
		t.Errorf("placement = (%v, %v) page %v, want baseline on page 0", n.X, n.Y, n.Page)
	}
}

func TestPlaceAppendNeedsMessage(t *testing.T) {
	in := writeSnapshot(t, &board.Snapshot{})
	err := runCLI(t, "place", in, "--length", "12", "--append", filepath.Join(t.TempDir(), "x.json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestPlaceRejectsMessageAndLength(t *testing.T) {
	in := writeSnapshot(t, &board.Snapshot{})
	if err := runCLI(t, "place", in, "-m", "hi", "--length", "3"); err == nil {
		t.Error("expected an error for --message with --length")
	}
}

func TestPlaceMissingSnapshot(t *testing.T) {
	err := runCLI(t, "place", filepath.Join(t.TempDir(), "absent.json"), "-m", "hi")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSimulateWritesSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sim.json")
	if err := runCLI(t, "simulate", "-n", "45", "--length", "0", "-o", out); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	snap, err := board.ImportJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Notes) != 45 {
		t.Fatalf("notes = %d, want 45", len(snap.Notes))
	}
	pages := layout.Paginate(snap.Layout())
	if got := len(pages.Page(0)); got != 40 {
		t.Errorf("page 0 holds %d notes, want 40", got)
	}
	if got := len(pages.Page(1)); got != 5 {
		t.Errorf("page 1 holds %d notes, want 5", got)
	}
}

func TestSimulateLengthsAndPageLimit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sim.json")
	lengths := strings.TrimSuffix(strings.Repeat("0,", 45), ",")
	if err := runCLI(t, "simulate", "--lengths", lengths, "--page-limit", "1", "-o", out); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	snap, err := board.ImportJSON(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Notes) != 40 {
		t.Errorf("notes = %d, want 40 (stopped at page limit)", len(snap.Notes))
	}
}

func TestPreviewAll(t *testing.T) {
	dir := t.TempDir()
	sim := filepath.Join(dir, "sim.json")
	if err := runCLI(t, "simulate", "-n", "41", "-o", sim); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	base := filepath.Join(dir, "out")
	if err := runCLI(t, "preview", sim, "--all", "-o", base+".svg"); err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, page := range []int{0, 1} {
		data, err := os.ReadFile(pagePath(base, page))
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if !bytes.HasPrefix(data, []byte("<svg")) {
			t.Errorf("page %d is not svg", page)
		}
	}
}

func TestPreviewMissingPage(t *testing.T) {
	in := writeSnapshot(t, &board.Snapshot{})
	err := runCLI(t, "preview", in, "--page", "4", "-o", filepath.Join(t.TempDir(), "p.svg"))
	if !errors.Is(err, errors.ErrCodePageNotFound) {
		t.Errorf("err = %v, want PAGE_NOT_FOUND", err)
	}
}

func TestCompletion(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out.String(), appName) {
		t.Error("completion script does not mention the program")
	}

	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestParseLengths(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"0,40, 100", []int{0, 40, 100}, false},
		{"5", []int{5}, false},
		{"5,x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseLengths(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLengths(%q) err = %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseLengths(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseLengths(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestStageCounts(t *testing.T) {
	got := stageCounts(map[string]int{"grid": 3, "empty-page": 1, "overflow": 1})
	want := []string{"1 empty-page", "3 grid", "1 overflow"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("stageCounts() = %v, want %v", got, want)
	}
}

func TestPagesTable(t *testing.T) {
	sum := &pipeline.PageSummary{
		Pages:     []pipeline.PageInfo{{Page: 0, Notes: 40, Glyphs: 120}, {Page: 1, Notes: 2, Glyphs: 9}},
		PageCount: 2,
		LastPage:  1,
	}
	out := pagesTable(sum)
	for _, want := range []string{"Page", "Notes", "40", "120"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestBoardBrowserModel(t *testing.T) {
	snap := &board.Snapshot{Board: board.BoardInfo{ID: "b1"}}
	for i, page := range []int{0, 0, 1} {
		snap = snap.Append(board.Record{
			ID:        string(rune('a' + i)),
			Nickname:  "n",
			Message:   "hi",
			X:         10,
			Y:         10,
			Page:      board.PageOf(page),
			CreatedAt: board.Timestamp(i + 1),
		})
	}

	m := NewBoardBrowserModel(snap)
	if m.Page != 1 {
		t.Fatalf("browser starts on page %d, want last page 1", m.Page)
	}

	key := func(s string) tea.KeyMsg {
		switch s {
		case "left":
			return tea.KeyMsg{Type: tea.KeyLeft}
		case "down":
			return tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			return tea.KeyMsg{Type: tea.KeyEnter}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	next, _ := m.Update(key("left"))
	m = next.(BoardBrowserModel)
	if m.Page != 0 {
		t.Fatalf("page = %d after left, want 0", m.Page)
	}
	next, _ = m.Update(key("down"))
	m = next.(BoardBrowserModel)
	next, _ = m.Update(key("down"))
	m = next.(BoardBrowserModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped to last note)", m.Cursor)
	}

	if view := m.View(); !strings.Contains(view, "b1") || !strings.Contains(view, "[2/2]") {
		t.Errorf("unexpected view:\n%s", view)
	}

	next, cmd := m.Update(key("enter"))
	m = next.(BoardBrowserModel)
	if m.Selected == nil || m.Selected.ID != "b" || cmd == nil {
		t.Errorf("selected = %+v, want note b and a quit command", m.Selected)
	}
}
