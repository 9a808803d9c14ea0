package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dvalk/slidenav/internal/engine"
	"github.com/dvalk/slidenav/internal/preview"
)

// locateResponse reports which unit contains the cursor.
type locateResponse struct {
	SlideLevel int `json:"slideLevel"`
	SlideIndex int `json:"slideIndex"`
	Version    int `json:"version,omitempty"`
}

// handleLocateDocument locates a cursor within a registered document and
// fans the position out to preview subscribers.
func (s *Server) handleLocateDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	line, err := strconv.Atoi(r.URL.Query().Get("line"))
	if err != nil {
		jsonError(w, "line query parameter must be an integer", http.StatusBadRequest)
		return
	}

	doc.Touch()

	start := time.Now()
	a := s.store.Analyze(doc)
	index := a.SlideIndex(line)
	s.stats.Record(time.Since(start))

	snap := doc.Snapshot()
	s.notifyPreview(r.Context(), doc.ID, index, a.SlideLevel)

	writeJSON(w, http.StatusOK, locateResponse{
		SlideLevel: a.SlideLevel,
		SlideIndex: index,
		Version:    snap.Version,
	})
}

// handleLocate is the stateless variant: document text and cursor line in
// the body, no session required.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes)
	var req struct {
		Text string `json:"text"`
		Line int    `json:"line"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	res := engine.Resolve([]byte(req.Text), req.Line)
	s.stats.Record(time.Since(start))

	writeJSON(w, http.StatusOK, locateResponse{
		SlideLevel: res.SlideLevel,
		SlideIndex: res.SlideIndex,
	})
}

// notifyPreview pushes a slide event to websocket subscribers and, when
// configured, the external renderer. Renderer failures are logged only:
// the locate contract has no error path.
func (s *Server) notifyPreview(ctx context.Context, docID string, index, level int) {
	s.hub.Broadcast(preview.SlideEvent{
		Type:       "slide",
		DocID:      docID,
		SlideIndex: index,
		SlideLevel: level,
	})
	if s.renderer == nil {
		return
	}
	if err := s.renderer.ShowSlide(ctx, docID, index, level); err != nil {
		s.log.Warn("renderer notify failed", "doc_id", docID, "error", err)
	}
}
