package board

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/layout"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Timestamp
		wantErr bool
	}{
		{"milliseconds", `1717000000000`, 1717000000000, false},
		{"float milliseconds", `1717000000000.0`, 1717000000000, false},
		{"seconds object", `{"seconds": 1717000000, "nanoseconds": 5000000}`, 1717000000005, false},
		{"underscore seconds object", `{"_seconds": 1717000000, "_nanoseconds": 0}`, 1717000000000, false},
		{"rfc3339", `"2024-05-29T16:26:40Z"`, 1717000000000, false},
		{"quoted milliseconds", `"1717000000000"`, 1717000000000, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"object without seconds", `{"minutes": 3}`, 0, true},
		{"garbage string", `"yesterday"`, 0, true},
		{"boolean", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && ts != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, ts, tt.want)
			}
		})
	}
}

func TestTimestampMarshal(t *testing.T) {
	ts := FromTime(time.Date(2024, 5, 29, 16, 26, 40, 0, time.UTC))
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "1717000000000" {
		t.Errorf("Marshal = %s", data)
	}
	if !ts.Time().Equal(time.Unix(1717000000, 0)) {
		t.Errorf("Time() = %v", ts.Time())
	}
}

func TestTextLength(t *testing.T) {
	tests := []struct {
		message string
		want    int
	}{
		{"", 0},
		{"hello", 5},
		{"힘내세요!", 5},
		{"🎉🎉", 2},
		{"  spaced  ", 10},
	}
	for _, tt := range tests {
		if got := TextLength(tt.message); got != tt.want {
			t.Errorf("TextLength(%q) = %d, want %d", tt.message, got, tt.want)
		}
	}
}

func TestNormalizeSortsByCreation(t *testing.T) {
	records := []Record{
		{ID: "late", CreatedAt: 300},
		{ID: "early", CreatedAt: 100},
		{ID: "legacy", CreatedAt: 0},
		{ID: "mid", CreatedAt: 200},
	}

	notes := Normalize(records)
	var ids []string
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	want := "legacy,early,mid,late"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
	if records[0].ID != "late" {
		t.Error("Normalize modified its input")
	}
}

func TestNormalizeLegacyPages(t *testing.T) {
	var records []Record
	for i := range 45 {
		records = append(records, Record{ID: string(rune('a' + i%26)), CreatedAt: Timestamp(i)})
	}

	notes := Normalize(records)
	for i, n := range notes {
		if want := i / layout.NotesPerPage; n.Page != want {
			t.Errorf("note %d page = %d, want %d", i, n.Page, want)
		}
	}
	if pages := layout.Paginate(notes); pages.Count() != 3 {
		t.Errorf("Count() = %d, want 3", pages.Count())
	}
}

func TestNormalizeExplicitPageOverrides(t *testing.T) {
	var records []Record
	for i := range 21 {
		records = append(records, Record{CreatedAt: Timestamp(i)})
	}
	records[20].Page = PageOf(0)

	notes := Normalize(records)
	if notes[20].Page != 0 {
		t.Errorf("21st note page = %d, want explicit 0", notes[20].Page)
	}
	if got := len(layout.Paginate(notes).Page(0)); got != 21 {
		t.Errorf("page 0 holds %d notes, want 21", got)
	}
}

func TestNormalizeMonotonicPages(t *testing.T) {
	records := []Record{
		{CreatedAt: 5, Page: PageOf(0)},
		{CreatedAt: 1},
		{CreatedAt: 9, Page: PageOf(1)},
		{CreatedAt: 7, Page: PageOf(1)},
	}
	notes := Normalize(records)
	for i := 1; i < len(notes); i++ {
		if notes[i].Page < notes[i-1].Page {
			t.Fatalf("page went backwards at %d: %+v", i, notes)
		}
	}
}

func TestNormalizeTextLength(t *testing.T) {
	notes := Normalize([]Record{{Message: "좋은 하루 되세요"}})
	if notes[0].TextLength != 9 {
		t.Errorf("TextLength = %d, want 9", notes[0].TextLength)
	}
}

func TestSnapshotAppend(t *testing.T) {
	s := &Snapshot{Board: BoardInfo{ID: "b1"}, Notes: []Record{{ID: "a"}}}
	next := s.Append(Record{ID: "b"})

	if len(s.Notes) != 1 {
		t.Errorf("original snapshot modified: %d notes", len(s.Notes))
	}
	if len(next.Notes) != 2 || next.Notes[1].ID != "b" {
		t.Errorf("appended snapshot = %+v", next.Notes)
	}
	if next.Board.ID != "b1" {
		t.Errorf("board info lost: %+v", next.Board)
	}
}

func TestSnapshotCanvas(t *testing.T) {
	fallback := layout.Canvas{Width: 1400, Height: 800}

	s := &Snapshot{}
	if got := s.Canvas(fallback); got != fallback {
		t.Errorf("Canvas() = %+v, want fallback", got)
	}

	s.Board.Canvas = &layout.Canvas{Width: 1920, Height: 1080}
	if got := s.Canvas(fallback); got.Width != 1920 {
		t.Errorf("Canvas() = %+v, want board canvas", got)
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		code errors.Code
	}{
		{"valid", Snapshot{Board: BoardInfo{ID: "abc"}, Notes: []Record{{ID: "a", X: 10, Y: 10}}}, ""},
		{"bad board id", Snapshot{Board: BoardInfo{ID: "../etc"}}, errors.ErrCodeInvalidInput},
		{"bad canvas", Snapshot{Board: BoardInfo{Canvas: &layout.Canvas{Width: 0, Height: 10}}}, errors.ErrCodeInvalidCanvas},
		{"duplicate ids", Snapshot{Notes: []Record{{ID: "a"}, {ID: "a"}}}, errors.ErrCodeInvalidSnapshot},
		{"negative page", Snapshot{Notes: []Record{{ID: "a", Page: PageOf(-1)}}}, errors.ErrCodeInvalidSnapshot},
		{"outside canvas", Snapshot{Notes: []Record{{ID: "a", X: 101}}}, errors.ErrCodeInvalidSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadJSONMixedRecords(t *testing.T) {
	input := `{
	  "board": {"id": "3f2a9c1e", "canvas": {"width": 1400, "height": 800}},
	  "notes": [
	    {"id": "n2", "message": "second", "x": 20, "y": 10, "page": 0, "createdAt": {"seconds": 1717000100, "nanoseconds": 0}},
	    {"id": "n1", "message": "first", "x": 6.43, "y": 10, "createdAt": "2024-05-29T16:26:40Z"},
	    {"id": "n0", "message": "legacy", "x": 30, "y": 40, "createdAt": null}
	  ]
	}`

	s, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	notes := s.Layout()
	if notes[0].ID != "n0" || notes[1].ID != "n1" || notes[2].ID != "n2" {
		t.Errorf("unexpected order: %s %s %s", notes[0].ID, notes[1].ID, notes[2].ID)
	}
	if notes[1].CreatedAtMillis != 1717000000000 {
		t.Errorf("n1 created = %d", notes[1].CreatedAtMillis)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"notes": [`))
	if !errors.Is(err, errors.ErrCodeInvalidSnapshot) {
		t.Errorf("ReadJSON() error = %v, want INVALID_SNAPSHOT", err)
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	s := &Snapshot{
		Board: BoardInfo{ID: "b1", Owner: "mina"},
		Notes: []Record{{ID: "a", Message: "hi", X: 10, Y: 20, Page: PageOf(0), CreatedAt: 42}},
	}

	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Board.Owner != "mina" || len(got.Notes) != 1 || *got.Notes[0].Page != 0 || got.Notes[0].CreatedAt != 42 {
		t.Errorf("ImportJSON = %+v", got)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSONOmitsMissingPage(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&Snapshot{Notes: []Record{{ID: "a"}}}, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), `"page"`) {
		t.Errorf("legacy record gained a page field: %s", buf.String())
	}
}
