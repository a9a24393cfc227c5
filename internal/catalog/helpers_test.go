package catalog

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/uploads"
)

var (
	adminSession  = &auth.SessionData{UserID: 1, Username: "admin", IsAdmin: true}
	readerSession = &auth.SessionData{UserID: 2, Username: "reader", IsAdmin: false}
)

type bookEvent struct {
	action string
	bookID uint
	failed bool
}

type auditRecorder struct {
	events []bookEvent
}

func (r *auditRecorder) LogBook(_ uint, _ string, action string, bookID uint, _ string, err error) {
	r.events = append(r.events, bookEvent{action: action, bookID: bookID, failed: err != nil})
}

type testCatalog struct {
	service *Service
	repo    *books.Repository
	covers  *uploads.Store
	audit   *auditRecorder
}

// setupCatalog opens a temp-file database. seed controls the 124-book first-run catalogue.
func setupCatalog(t *testing.T, seed bool) *testCatalog {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "catalog.db"), database.Options{
		SkipSeed: !seed,
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := uploads.NewStore(filepath.Join(t.TempDir(), "pic"))
	require.NoError(t, err)

	repo := books.NewRepository(db.DB)
	rec := &auditRecorder{}
	return &testCatalog{
		service: NewService(repo, store, rec, 21),
		repo:    repo,
		covers:  store,
		audit:   rec,
	}
}

func (tc *testCatalog) count(t *testing.T) int64 {
	t.Helper()
	n, err := tc.repo.CountBooks()
	require.NoError(t, err)
	return n
}

func coverFile(name, content string) *uploads.File {
	return &uploads.File{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}

func validInput() BookInput {
	return BookInput{Title: "Пикник", Author: "Стругацкие", Pages: "224", Publisher: "АСТ"}
}
