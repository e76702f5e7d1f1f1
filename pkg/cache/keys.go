package cache

import "strconv"

// Keyer builds cache keys. Every key is scoped to a board and a page so that
// all entries of one page share a common prefix.
type Keyer interface {
	// PlacementKey returns the key for a placement computed on page.
	PlacementKey(boardID string, page int, opts PlacementKeyOpts) string

	// PreviewKey returns the key for a rendered preview of page.
	PreviewKey(boardID string, page int, opts PreviewKeyOpts) string

	// PagePrefix returns the prefix shared by every key of page.
	PagePrefix(boardID string, page int) string
}

// PlacementKeyOpts holds the inputs a placement depends on besides its page.
type PlacementKeyOpts struct {
	NotesHash  string  `json:"notes"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	TextLength int     `json:"text_length"`
}

// PreviewKeyOpts holds the inputs a preview depends on besides its page.
type PreviewKeyOpts struct {
	NotesHash  string  `json:"notes"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	GapOutline bool    `json:"gap_outline,omitempty"`
	Highlight  string  `json:"highlight,omitempty"`
}

// DefaultKeyer produces keys of the form "board:page:kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// anonymousBoard stands in for snapshots that carry no board ID.
const anonymousBoard = "_"

// PlacementKey implements Keyer.
func (DefaultKeyer) PlacementKey(boardID string, page int, opts PlacementKeyOpts) string {
	return hashKey(scope("place", boardID, page), opts)
}

// PreviewKey implements Keyer.
func (DefaultKeyer) PreviewKey(boardID string, page int, opts PreviewKeyOpts) string {
	return hashKey(scope("preview", boardID, page), opts)
}

// PagePrefix implements Keyer.
func (DefaultKeyer) PagePrefix(boardID string, page int) string {
	return scope("", boardID, page)
}

func scope(kind, boardID string, page int) string {
	return boardOrAnon(boardID) + ":" + strconv.Itoa(page) + ":" + kind
}

func boardOrAnon(id string) string {
	if id == "" {
		return anonymousBoard
	}
	return id
}

var _ Keyer = DefaultKeyer{}
