// Package board reads and writes board snapshots and converts them into the
// resolved notes the layout engine works on.
//
// # Snapshot Format
//
// A snapshot is the JSON document a board service hands over when it asks for
// a placement:
//
//	{
//	  "board": {"id": "3f2a9c1e", "owner": "mina", "canvas": {"width": 1400, "height": 800}},
//	  "notes": [
//	    {"id": "n1", "nickname": "jun", "message": "you got this", "x": 6.43, "y": 10, "page": 0,
//	     "createdAt": 1717000000000}
//	  ]
//	}
//
// Stored notes come from several generations of the board service, so two
// fields are lenient:
//
//   - page may be missing. [Normalize] resolves it from the note's position in
//     creation order, [layout.NotesPerPage] notes per page.
//   - createdAt may be integer milliseconds, a {"seconds", "nanoseconds"}
//     object, an RFC 3339 string, or null. See [Timestamp].
//
// Everything past [Normalize] sees a mandatory page and a millisecond creation
// time.
package board
