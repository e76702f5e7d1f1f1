package board

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/layout"
)

// Record is a stored note as the board service keeps it.
type Record struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname,omitempty"`
	Message   string    `json:"message"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Page      *int      `json:"page,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}

// BoardInfo describes the board a snapshot belongs to.
type BoardInfo struct {
	ID     string         `json:"id"`
	Owner  string         `json:"owner,omitempty"`
	Title  string         `json:"title,omitempty"`
	Canvas *layout.Canvas `json:"canvas,omitempty"`
}

// Snapshot is the state of one board at the time of a placement request.
type Snapshot struct {
	Board BoardInfo `json:"board"`
	Notes []Record  `json:"notes"`
}

// TextLength returns the glyph count of a message, counted in Unicode code
// points.
func TextLength(message string) int {
	return utf8.RuneCountInString(message)
}

// PageOf returns a pointer to page, for building records with an explicit page.
func PageOf(page int) *int { return &page }

// Normalize converts records into layout notes ordered by creation time.
//
// Records without a page get floor(i / NotesPerPage), where i is the record's
// index in creation order. Explicit pages are kept as-is, so a record may
// override the legacy default in either direction.
func Normalize(records []Record) []layout.Note {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})

	notes := make([]layout.Note, len(sorted))
	for i, r := range sorted {
		page := i / layout.NotesPerPage
		if r.Page != nil {
			page = *r.Page
		}
		notes[i] = layout.Note{
			ID:              r.ID,
			TextLength:      TextLength(r.Message),
			X:               r.X,
			Y:               r.Y,
			Page:            page,
			CreatedAtMillis: r.CreatedAt.Millis(),
		}
	}
	return notes
}

// Layout returns the snapshot's notes in the form the packer consumes.
func (s *Snapshot) Layout() []layout.Note {
	return Normalize(s.Notes)
}

// Canvas returns the board's recorded canvas, or fallback when none is set.
func (s *Snapshot) Canvas(fallback layout.Canvas) layout.Canvas {
	if s.Board.Canvas != nil {
		return *s.Board.Canvas
	}
	return fallback
}

// Append returns a copy of s with r added. s is not modified.
func (s *Snapshot) Append(r Record) *Snapshot {
	notes := make([]Record, len(s.Notes), len(s.Notes)+1)
	copy(notes, s.Notes)
	return &Snapshot{Board: s.Board, Notes: append(notes, r)}
}

// Validate checks structural consistency: a usable board ID, unique note
// IDs, non-negative explicit pages, and coordinates inside [0, 100].
func (s *Snapshot) Validate() error {
	if s.Board.ID != "" {
		if err := errors.ValidateBoardID(s.Board.ID); err != nil {
			return err
		}
	}
	if s.Board.Canvas != nil {
		if err := s.Board.Canvas.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(s.Notes))
	for i, r := range s.Notes {
		if r.ID != "" {
			if seen[r.ID] {
				return errors.New(errors.ErrCodeInvalidSnapshot, "note %d: duplicate id %q", i, r.ID)
			}
			seen[r.ID] = true
		}
		if r.Page != nil && *r.Page < 0 {
			return errors.New(errors.ErrCodeInvalidSnapshot, "note %d (%s): page must be non-negative, got %d", i, r.ID, *r.Page)
		}
		if !inPercent(r.X) || !inPercent(r.Y) {
			return errors.New(errors.ErrCodeInvalidSnapshot, "note %d (%s): position (%v, %v) outside [0, 100]", i, r.ID, r.X, r.Y)
		}
	}
	return nil
}

func inPercent(v float64) bool { return v >= 0 && v <= 100 }
