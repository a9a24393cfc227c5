package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	auditrepo "github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/users"
	"github.com/mrlokans/catalog/internal/entities"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/uploads"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// OpenDatabase opens the catalogue store with the configured default
// administrator. seed controls whether an empty books table gets the sample data.
func OpenDatabase(cfg *config.Config, seed bool) (*database.Database, error) {
	opts := database.Options{SkipSeed: !seed}

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		hash, err := auth.HashPassword(cfg.Admin.Password, cfg.Auth.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash default admin password: %w", err)
		}
		opts.DefaultAdmin = &entities.User{Username: cfg.Admin.Username, PasswordHash: hash}
	}

	return database.NewDatabase(cfg.Database.Path, opts)
}

// CSRFSecret decodes the configured secret key, generating a random one when unset.
func CSRFSecret(cfg config.Auth) ([]byte, error) {
	if cfg.SecretKey != "" {
		secret, err := hex.DecodeString(cfg.SecretKey)
		if err != nil {
			// Not hex, use as raw bytes
			secret = []byte(cfg.SecretKey)
		}
		return secret, nil
	}

	generated, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("WARNING: SECRET_KEY is not set, generated a temporary one. Open forms will fail CSRF checks after a restart.")
	return hex.DecodeString(generated)
}

// BuildRouter wires every service on top of an opened database.
func BuildRouter(cfg *config.Config, db *database.Database, version string) (*gin.Engine, error) {
	store, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload folder: %w", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session manager: %w", err)
	}

	csrfSecret, err := CSRFSecret(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	authService := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
	catalogService := catalog.NewService(books.NewRepository(db.DB), store, auditService, cfg.Catalog.PageSize)

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:        catalogService,
		Covers:         store,
		AuditService:   auditService,
		Database:       db,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthConfig:     cfg.Auth,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		Version:        version,
	}), nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Catalog v%s", version)

	db, err := OpenDatabase(cfg, true)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	router, err := BuildRouter(cfg, db, version)
	if err != nil {
		db.Close()
		log.Fatalf("Failed to build router: %v", err)
	}

	Serve(router, cfg, func(ctx context.Context) {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	})
}
