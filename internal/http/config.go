package http

import (
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/uploads"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog      *catalog.Service
	Covers       *uploads.Store
	AuditService *audit.Service
	Database     Pinger

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte // CSRF protection is off when empty
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Upload limits
	MaxUploadBytes int64

	// Application info
	Version string
}
