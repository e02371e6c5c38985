// Package httpserver exposes the catalog, quote, design and backup use cases
// as a JSON API, plus the admin import/export surface.
package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/ofertare/mobila/internal/adapters/ai"
	"github.com/ofertare/mobila/internal/adapters/mailer"
	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/usecase"
)

type Server struct {
	catalog *usecase.CatalogUC
	quotes  *usecase.QuoteUC
	designs *usecase.DesignUC
	backups *usecase.BackupUC

	storage   domain.FileStorage
	mail      *mailer.Mailer
	describer *ai.Describer

	oauthCfg      *oauth2.Config
	adminSecret   []byte
	adminPassword string
	adminAllowed  map[string]struct{}

	uploadsDir string
}

type Options struct {
	Storage       domain.FileStorage
	Mailer        *mailer.Mailer
	Describer     *ai.Describer
	OAuthConfig   *oauth2.Config
	AdminSecret   string
	AdminPassword string
	AdminEmails   map[string]struct{}
	UploadsDir    string
}

func New(catalog *usecase.CatalogUC, quotes *usecase.QuoteUC, designs *usecase.DesignUC, backups *usecase.BackupUC, opts Options) http.Handler {
	s := &Server{
		catalog:       catalog,
		quotes:        quotes,
		designs:       designs,
		backups:       backups,
		storage:       opts.Storage,
		mail:          opts.Mailer,
		describer:     opts.Describer,
		oauthCfg:      opts.OAuthConfig,
		adminSecret:   []byte(opts.AdminSecret),
		adminPassword: opts.AdminPassword,
		adminAllowed:  opts.AdminEmails,
		uploadsDir:    opts.UploadsDir,
	}
	if len(s.adminSecret) == 0 {
		s.adminSecret = []byte("dev-admin-secret")
	}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	if s.uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadsDir))))
	}

	r.Get("/api/catalog", s.handleGetCatalog)

	r.Route("/api/quote", func(r chi.Router) {
		r.Get("/", s.handleGetQuote)
		r.Delete("/", s.handleResetQuote)
		r.Post("/items", s.handleAddQuoteItem)
		r.Patch("/items/{id}", s.handleUpdateQuoteItem)
		r.Delete("/items/{id}", s.handleRemoveQuoteItem)
		r.Put("/labor", s.handleSetLabor)
		r.Put("/metadata", s.handleQuoteMetadata)
		r.Post("/manual", s.handleAddManualItem)
		r.Post("/designs", s.handleAddDesignToQuote)
		r.Post("/sets/{id}", s.handleAddSetToQuote)
		r.Get("/export", s.handleExportQuoteXLSX)
		r.Post("/email", s.handleEmailQuote)
	})

	r.Route("/api/pricing", func(r chi.Router) {
		r.Post("/design", s.handlePriceDesign)
		r.Post("/cutlist", s.handlePriceCutList)
	})

	r.Route("/api/designs", func(r chi.Router) {
		r.Get("/", s.handleListDesigns)
		r.Post("/", s.handleSaveDesign)
		r.Put("/{id}", s.handleSaveDesign)
		r.Delete("/{id}", s.handleDeleteDesign)
		r.Post("/{id}/describe", s.handleDescribeDesign)
	})

	r.Route("/api/sets", func(r chi.Router) {
		r.Get("/", s.handleListSets)
		r.Post("/", s.handleCreateSet)
		r.Delete("/{id}", s.handleDeleteSet)
		r.Post("/{id}/designs/{designID}", s.handleAddDesignToSet)
		r.Delete("/{id}/designs/{designID}", s.handleRemoveDesignFromSet)
	})

	r.Post("/admin/login", s.handleAdminLogin)
	if s.oauthCfg != nil {
		r.Get("/auth/google/login", s.handleGoogleLogin)
		r.Get("/auth/google/callback", s.handleGoogleCallback)
	}

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Post("/categories", s.handleAddCategory)
		r.Delete("/categories/{name}", s.handleDeleteCategory)
		r.Post("/categories/{name}/subcategories", s.handleAddSubcategory)
		r.Put("/categories/{name}/subcategories/{sub}", s.handleUpdateSubcategory)
		r.Delete("/categories/{name}/subcategories/{sub}", s.handleDeleteSubcategory)
		r.Post("/categories/{name}/subcategories/{sub}/products", s.handleAddProduct)
		r.Put("/categories/{name}/subcategories/{sub}/products/{id}", s.handleUpdateProduct)
		r.Delete("/categories/{name}/subcategories/{sub}/products/{id}", s.handleDeleteProduct)

		r.Put("/materials", s.handleUpsertMaterial)
		r.Delete("/materials/{id}", s.handleDeleteMaterial)
		r.Put("/accessories", s.handleUpsertAccessory)
		r.Delete("/accessories/{id}", s.handleDeleteAccessory)

		r.Get("/export/json", s.handleExportJSON)
		r.Get("/export/json/{category}", s.handleExportCategoryJSON)
		r.Get("/export/xlsx", s.handleExportCatalogXLSX)
		r.Get("/export/csv", s.handleExportSubcategoryCSV)
		r.Post("/import/json", s.handleImportJSON)
		r.Post("/import/rows", s.handleImportRows)

		r.Get("/backups", s.handleListBackups)
		r.Post("/backups", s.handleCreateBackup)
		r.Post("/backups/restore", s.handleRestoreBackup)

		r.Post("/upload", s.handleUpload)
	})

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrUnknownDesignType):
		code = http.StatusBadRequest
	}
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// decodeQuiet decodes an optional JSON body, treating an empty body as ok.
func decodeQuiet(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}
