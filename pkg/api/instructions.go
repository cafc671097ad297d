package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
)

func (s *Server) handleListInstructions(w http.ResponseWriter, r *http.Request) {
	items, err := s.instructions.GetAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	item, err := s.instructions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// the edit form always shows at least one row per sequence
	if r.URL.Query().Get("editing") == "true" {
		item.Data = item.Data.WithEditingDefaults()
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateInstruction(w http.ResponseWriter, r *http.Request) {
	var data model.Instruction
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.writeError(w, errBadRequest)
		return
	}
	item, err := s.instructions.Create(r.Context(), &data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handlePatchInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	patch, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, errBadRequest)
		return
	}
	item, err := s.instructions.Patch(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.instructions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	item, err := s.instructions.Duplicate(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	doc, err := s.instructions.Document(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}
