package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/postboard/pkg/board"
	"github.com/matzehuels/postboard/pkg/errors"
	"github.com/matzehuels/postboard/pkg/pipeline"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// InvalidateResponse is the body of DELETE /v1/cache/{board}/{page}.
type InvalidateResponse struct {
	BoardID string `json:"board_id"`
	Page    int    `json:"page"`
	Deleted int    `json:"deleted"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handlePlace computes the position of one new note.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req pipeline.PlaceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Snapshot != nil {
		if err := req.Snapshot.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	res, err := s.runner.Place(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handlePages summarizes the pages of the posted snapshot.
func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	snap, err := s.readSnapshot(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sum, err := s.runner.Paginate(r.Context(), snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

// handlePreview renders one page of the posted snapshot as SVG. Query
// parameters: page (default 0), gaps, highlight, width, height.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), 0)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidPage, err, "page"))
		return
	}
	opts := pipeline.PreviewOptions{
		Highlight: q.Get("highlight"),
	}
	if opts.GapOutline, err = boolParam(q.Get("gaps")); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "gaps"))
		return
	}
	if opts.Width, err = floatParam(q.Get("width")); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidCanvas, err, "width"))
		return
	}
	if opts.Height, err = floatParam(q.Get("height")); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidCanvas, err, "height"))
		return
	}

	snap, err := s.readSnapshot(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	svg, cached, err := s.runner.Preview(r.Context(), snap, page, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Cache", cacheHeader(cached))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(svg); err != nil {
		s.logger.Debug("write preview", "err", err)
	}
}

// handleInvalidate drops the cached results of one board page.
func (s *Server) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	boardID := chi.URLParam(r, "board")
	if err := errors.ValidateBoardID(boardID); err != nil {
		s.writeError(w, r, err)
		return
	}
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidPage, err, "page"))
		return
	}
	if err := errors.ValidatePage(page); err != nil {
		s.writeError(w, r, err)
		return
	}

	n, err := s.runner.Invalidate(r.Context(), boardID, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, InvalidateResponse{BoardID: boardID, Page: page, Deleted: n})
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) readSnapshot(w http.ResponseWriter, r *http.Request) (*board.Snapshot, error) {
	var snap board.Snapshot
	if err := decodeJSON(w, r, &snap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "snapshot")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func boolParam(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
