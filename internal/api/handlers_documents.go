package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dvalk/slidenav/internal/deck"
)

// documentRequest is the body for creating or updating a document.
type documentRequest struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*documentRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes)
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if int64(len(req.Text)) > s.cfg.MaxDocumentBytes {
		jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.cfg.MaxDocumentBytes), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return &req, true
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}
	doc := s.store.Create(req.Title, []byte(req.Text))
	s.log.Info("document registered", "doc_id", doc.ID, "bytes", len(req.Text))
	writeJSON(w, http.StatusCreated, doc.Snapshot())
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, doc.Snapshot())
}

func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	req, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}
	if req.Title != "" {
		doc.SetTitle(req.Title)
	}
	doc.SetContent([]byte(req.Text))
	writeJSON(w, http.StatusOK, doc.Snapshot())
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "docID")
	if !s.store.Delete(id) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	s.log.Info("document removed", "doc_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	doc.Touch()
	text, _ := doc.Content()
	d := deck.FromAnalysis(s.store.Analyze(doc), text)
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if s.store.Get(docID) == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	s.hub.ServeWS(w, r, docID)
}
