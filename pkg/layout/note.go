package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/postboard/pkg/errors"
)

// Note is an already-placed note as seen by the packer.
//
// X and Y are the normalized center of the note in [0, 100]. Page is always
// resolved; legacy records without a page are coerced by the caller before
// they reach this package.
type Note struct {
	ID              string  `json:"id,omitempty"`
	TextLength      int     `json:"text_length"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Page            int     `json:"page"`
	CreatedAtMillis int64   `json:"created_at_millis"`
}

// Canvas is the board's display size in pixels at the time of a call.
type Canvas struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Validate checks that both dimensions are positive.
func (c Canvas) Validate() error {
	return errors.ValidateCanvas(c.Width, c.Height)
}

// Placement is the computed position of a new note.
type Placement struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// SortByCreation returns a copy of notes ordered by creation time.
// Ties keep their input order.
func SortByCreation(notes []Note) []Note {
	sorted := slices.Clone(notes)
	slices.SortStableFunc(sorted, func(a, b Note) int {
		return cmp.Compare(a.CreatedAtMillis, b.CreatedAtMillis)
	})
	return sorted
}

func validateNotes(notes []Note) error {
	for i, n := range notes {
		if n.TextLength < 0 {
			return errors.New(errors.ErrCodeInvalidTextLength, "note %d (%s): text length must be non-negative, got %d", i, n.ID, n.TextLength)
		}
		if n.Page < 0 {
			return errors.New(errors.ErrCodeInvalidPage, "note %d (%s): page must be non-negative, got %d", i, n.ID, n.Page)
		}
	}
	return nil
}
