package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofrs/uuid/v5"

	"github.com/mpapenbr/trackday-instructions/pkg/render/export"
	"github.com/mpapenbr/trackday-instructions/pkg/render/html"
)

// handlePreview serves the print-style full page preview.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.servePreview(w, r, html.ChromeFullPage)
}

// handlePreviewInline serves the bare document fragment for embedding.
func (s *Server) handlePreviewInline(w http.ResponseWriter, r *http.Request) {
	s.servePreview(w, r, html.ChromeInline)
}

func (s *Server) servePreview(
	w http.ResponseWriter, r *http.Request, chrome html.Chrome,
) {
	raw := r.PathValue("id")
	if raw == "" {
		raw = r.URL.Query().Get("instruction")
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		s.writeError(w, errBadRequest)
		return
	}
	doc, err := s.instructions.Document(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := html.Render(doc, chrome)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	//nolint:errcheck // streaming response
	w.Write(out)
}

// handleExport streams one physical page as SVG or PNG.
// Query params: format (svg|png, default svg), page (1-based, default 1).
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if page, err = strconv.Atoi(p); err != nil {
			s.writeError(w, errBadRequest)
			return
		}
	}
	doc, err := s.instructions.Document(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := export.Options{Format: format}
	switch format {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	case "png":
		w.Header().Set("Content-Type", "image/png")
	default:
		s.writeError(w, fmt.Errorf("%w: format %s", errBadRequest, format))
		return
	}
	total, err := export.PageCount(doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("X-Page-Count", strconv.Itoa(total))
	if err := export.WritePage(w, doc, page, opts); err != nil {
		s.writeError(w, fmt.Errorf("%w: %s", errBadRequest, err.Error()))
	}
}
