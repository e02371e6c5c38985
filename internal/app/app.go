// Package app wires the storage backend, use cases and adapters together.
package app

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ofertare/mobila/internal/adapters/ai"
	"github.com/ofertare/mobila/internal/adapters/httpserver"
	"github.com/ofertare/mobila/internal/adapters/mailer"
	"github.com/ofertare/mobila/internal/adapters/storage/localfs"
	"github.com/ofertare/mobila/internal/adapters/store"
	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/usecase"
)

type App struct {
	Store     domain.KVStore
	CatalogUC *usecase.CatalogUC
	QuoteUC   *usecase.QuoteUC
	DesignUC  *usecase.DesignUC
	BackupUC  *usecase.BackupUC

	storage     domain.FileStorage
	mail        *mailer.Mailer
	describer   *ai.Describer
	oauthCfg    *oauth2.Config
	uploadsDir  string
	closeStore  func() error
}

// NewApp builds the application from environment configuration. The STORE
// variable selects the persistence backend: file (default), sqlite, postgres
// or memory.
func NewApp() (*App, error) {
	kv, closeFn, err := openStore()
	if err != nil {
		return nil, err
	}

	uploadsDir := os.Getenv("STORAGE_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	storage, err := localfs.New(uploadsDir)
	if err != nil {
		return nil, err
	}

	a := &App{
		Store:      kv,
		CatalogUC:  usecase.NewCatalogUC(kv),
		QuoteUC:    usecase.NewQuoteUC(kv),
		DesignUC:   usecase.NewDesignUC(kv),
		BackupUC:   usecase.NewBackupUC(kv),
		storage:    storage,
		uploadsDir: uploadsDir,
		closeStore: closeFn,
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		if port == 0 {
			port = 587
		}
		a.mail = mailer.New(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"), os.Getenv("SMTP_FROM"))
	}
	a.describer = ai.New(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_MODEL"))

	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		a.oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CatalogUC, a.QuoteUC, a.DesignUC, a.BackupUC, httpserver.Options{
		Storage:       a.storage,
		Mailer:        a.mail,
		Describer:     a.describer,
		OAuthConfig:   a.oauthCfg,
		AdminSecret:   os.Getenv("ADMIN_SECRET"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmails:   allowedEmails(os.Getenv("ADMIN_ALLOWED_EMAILS")),
		UploadsDir:    a.uploadsDir,
	})
}

func (a *App) Close() error {
	if a.closeStore != nil {
		return a.closeStore()
	}
	return nil
}

func openStore() (domain.KVStore, func() error, error) {
	backend := strings.ToLower(os.Getenv("STORE"))
	switch backend {
	case "", "file":
		dir := os.Getenv("DATA_DIR")
		if dir == "" {
			dir = "data"
		}
		kv, err := store.NewFile(dir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", "file").Str("dir", dir).Msg("store opened")
		return kv, nil, nil
	case "sqlite":
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "data/mobila.db"
		}
		kv, err := store.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", "sqlite").Str("path", path).Msg("store opened")
		return kv, kv.Close, nil
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, nil, fmt.Errorf("STORE=postgres requires DATABASE_URL")
		}
		db, err := gorm.Open(gormpg.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		kv, err := store.NewPostgres(db)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("backend", "postgres").Msg("store opened")
		return kv, nil, nil
	case "memory":
		return store.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE backend %q", backend)
	}
}

func allowedEmails(raw string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, e := range strings.Split(raw, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out[e] = struct{}{}
		}
	}
	return out
}
