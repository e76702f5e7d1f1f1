package pipeline

import (
	"io"
	"os"

	"github.com/matzehuels/postboard/pkg/board"
)

// LoadSnapshot reads a snapshot from path, or from stdin when path is "-".
func LoadSnapshot(path string) (*board.Snapshot, error) {
	if path == "-" {
		return board.ReadJSON(os.Stdin)
	}
	return board.ImportJSON(path)
}

// ReadSnapshot decodes a snapshot from r.
func ReadSnapshot(r io.Reader) (*board.Snapshot, error) {
	return board.ReadJSON(r)
}
