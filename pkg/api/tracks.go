package api

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mpapenbr/trackday-instructions/pkg/model"
)

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	items, err := s.tracks.GetAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	item, err := s.tracks.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleCreateTrack(w http.ResponseWriter, r *http.Request) {
	var data model.Track
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.writeError(w, errBadRequest)
		return
	}
	item, err := s.tracks.Create(r.Context(), &data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handlePatchTrack(w http.ResponseWriter, r *http.Request) {
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
	item, err := s.tracks.Patch(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.tracks.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateTrack(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	item, err := s.tracks.Duplicate(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleListTrackInstructions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	items, err := s.instructions.GetByTrack(r.Context(), id.String())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}
