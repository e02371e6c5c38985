package httpserver

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ofertare/mobila/internal/adapters/importer"
	"github.com/ofertare/mobila/internal/domain"
)

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.catalog.ExportJSON(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.json"`)
	_, _ = w.Write(data)
}

func (s *Server) handleExportCategoryJSON(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "category")
	data, err := s.catalog.ExportCategoryJSON(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.json"`)
	_, _ = w.Write(data)
}

func (s *Server) handleExportCatalogXLSX(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := importer.ExportCatalogXLSX(db)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.xlsx"`)
	_, _ = w.Write(data)
}

func (s *Server) handleExportSubcategoryCSV(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	sub := r.URL.Query().Get("subcategory")
	db, err := s.catalog.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := importer.ExportSubcategoryCSV(db, category, sub, w); err != nil {
		writeError(w, err)
		return
	}
}

// handleImportJSON replaces the whole catalog with the posted document.
// The previous state is backed up first so a bad import stays recoverable.
func (s *Server) handleImportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body"})
		return
	}
	if err := s.backupCurrent(r); err != nil {
		writeError(w, err)
		return
	}
	db, err := s.catalog.ImportJSON(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}

// handleImportRows imports a CSV or XLSX product sheet into one subcategory.
// Multipart form: file field "file", plus "category" and "subcategory".
func (s *Server) handleImportRows(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	category := r.FormValue("category")
	sub := r.FormValue("subcategory")
	if category == "" || sub == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing category or subcategory"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	db, err := s.catalog.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var next domain.Database
	var report importer.Report
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx":
		next, report, err = importer.ImportXLSX(db, category, sub, file)
	default:
		next, report, err = importer.ImportCSV(db, category, sub, file)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.backupCurrent(r); err != nil {
		writeError(w, err)
		return
	}
	if err := s.catalog.Replace(r.Context(), next); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) backupCurrent(r *http.Request) error {
	db, err := s.catalog.Load(r.Context())
	if err != nil {
		return err
	}
	_, err = s.backups.Create(r.Context(), db)
	return err
}

func (s *Server) handleListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := s.backups.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, backups)
}

func (s *Server) handleCreateBackup(w http.ResponseWriter, r *http.Request) {
	db, err := s.catalog.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	b, err := s.backups.Create(r.Context(), db)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"date": b.Date})
}

func (s *Server) handleRestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	db, err := s.backups.Restore(r.Context(), req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, db)
}
