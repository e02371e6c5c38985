package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/pricing"
)

func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := s.designs.Designs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

// handleSaveDesign creates or replaces a design. The response includes the
// parametric cost when the design type is priceable.
func (s *Server) handleSaveDesign(w http.ResponseWriter, r *http.Request) {
	var d domain.FurnitureDesign
	if !decodeBody(w, r, &d) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		d.ID = id
	}
	saved, err := s.designs.SaveDesign(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]any{"design": saved}
	if cost, err := pricing.DesignCost(saved); err == nil {
		resp["cost"] = cost
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.designs.DeleteDesign(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDescribeDesign(w http.ResponseWriter, r *http.Request) {
	if !s.describer.Enabled() {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "describer is not configured"})
		return
	}
	id := chi.URLParam(r, "id")
	designs, err := s.designs.Designs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	for _, d := range designs {
		if d.ID == id {
			text, err := s.describer.DescribeDesign(r.Context(), d)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"description": text})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "design not found"})
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.designs.Sets(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var set domain.FurnitureSet
	if !decodeBody(w, r, &set) {
		return
	}
	created, err := s.designs.CreateSet(r.Context(), set)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	if err := s.designs.DeleteSet(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddDesignToSet(w http.ResponseWriter, r *http.Request) {
	if err := s.designs.AddDesignToSet(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "designID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveDesignFromSet(w http.ResponseWriter, r *http.Request) {
	if err := s.designs.RemoveDesignFromSet(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "designID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
