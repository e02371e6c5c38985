package httpserver

import (
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/ofertare/mobila/internal/domain"
)

// pathParam returns a decoded route parameter. Category and subcategory
// names travel URL-escaped because they may contain spaces.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if dec, err := url.PathUnescape(v); err == nil {
		return dec
	}
	return v
}

func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	db, err := s.catalog.AddCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, db)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.DeleteCategory(r.Context(), pathParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleAddSubcategory(w http.ResponseWriter, r *http.Request) {
	var sub domain.Subcategory
	if !decodeBody(w, r, &sub) {
		return
	}
	db, err := s.catalog.AddSubcategory(r.Context(), pathParam(r, "name"), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, db)
}

func (s *Server) handleUpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	var sub domain.Subcategory
	if !decodeBody(w, r, &sub) {
		return
	}
	db, err := s.catalog.UpdateSubcategory(r.Context(), pathParam(r, "name"), pathParam(r, "sub"), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleDeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.DeleteSubcategory(r.Context(), pathParam(r, "name"), pathParam(r, "sub"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !decodeBody(w, r, &p) {
		return
	}
	db, err := s.catalog.AddProduct(r.Context(), pathParam(r, "name"), pathParam(r, "sub"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, db)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !decodeBody(w, r, &p) {
		return
	}
	db, err := s.catalog.UpdateProduct(r.Context(), pathParam(r, "name"), pathParam(r, "sub"), pathParam(r, "id"), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.DeleteProduct(r.Context(), pathParam(r, "name"), pathParam(r, "sub"), pathParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleUpsertMaterial(w http.ResponseWriter, r *http.Request) {
	var m domain.Material
	if !decodeBody(w, r, &m) {
		return
	}
	db, err := s.catalog.UpsertMaterial(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.DeleteMaterial(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleUpsertAccessory(w http.ResponseWriter, r *http.Request) {
	var a domain.Accessory
	if !decodeBody(w, r, &a) {
		return
	}
	db, err := s.catalog.UpsertAccessory(r.Context(), a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleDeleteAccessory(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.DeleteAccessory(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.storage == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "upload storage is not configured"})
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing image field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read upload"})
		return
	}

	urlPath, err := s.storage.Save(header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": urlPath})
}
