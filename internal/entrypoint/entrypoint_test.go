package entrypoint

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(dir, "catalog.db")},
		Uploads:  config.Uploads{Dir: filepath.Join(dir, "pic"), MaxBytes: 1 << 20},
		Catalog:  config.Catalog{PageSize: config.DefaultPageSize},
		Auth: config.Auth{
			SecretKey:         "00112233445566778899aabbccddeeff",
			SessionLifetime:   time.Hour,
			BcryptCost:        4,
			MinPasswordLength: 6,
		},
		Admin: config.Admin{Username: "admin", Password: "admin123"},
	}
}

func TestCSRFSecret(t *testing.T) {
	secret, err := CSRFSecret(config.Auth{SecretKey: "00ff"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, secret)

	secret, err = CSRFSecret(config.Auth{SecretKey: "not hex"})
	require.NoError(t, err)
	assert.Equal(t, []byte("not hex"), secret)

	first, err := CSRFSecret(config.Auth{})
	require.NoError(t, err)
	assert.Len(t, first, 32)
	second, err := CSRFSecret(config.Auth{})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestOpenDatabase(t *testing.T) {
	cfg := testConfig(t)

	db, err := OpenDatabase(cfg, false)
	require.NoError(t, err)
	defer db.Close()

	admin, err := users.NewRepository(db.DB).GetUserByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	count, err := books.NewRepository(db.DB).CountBooks()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOpenDatabase_NoAdminConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.Admin = config.Admin{}

	db, err := OpenDatabase(cfg, true)
	require.NoError(t, err)
	defer db.Close()

	count, err := users.NewRepository(db.DB).CountUsers()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBuildRouter(t *testing.T) {
	cfg := testConfig(t)
	db, err := OpenDatabase(cfg, true)
	require.NoError(t, err)
	defer db.Close()

	router, err := BuildRouter(cfg, db, "test")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?page=2", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/add_book", nil))
	assert.NotEqual(t, http.StatusOK, rr.Code)
}
