package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/entities"
)

// setupTestDB creates a fresh file-backed database in a temp dir.
func setupTestDB(t *testing.T, opts Options) (*Database, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	opts.LogLevel = logger.Silent
	db, err := NewDatabase(dbPath, opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, dbPath
}

func TestNewDatabase_SeedsSampleBooks(t *testing.T) {
	db, _ := setupTestDB(t, Options{})

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(len(namedSampleBooks)+100), count)
	assert.Equal(t, int64(124), count)

	var book entities.Book
	require.NoError(t, db.DB.Where("title = ?", "Дюна").First(&book).Error)
	assert.Equal(t, "Фрэнк Герберт", book.Author)
	assert.Equal(t, 896, book.Pages)
	assert.Equal(t, "Dune.jpg", book.CoverImage)

	require.NoError(t, db.DB.Where("title = ?", "Книга пример 7").First(&book).Error)
	assert.Equal(t, "Автор C", book.Author)
	assert.Equal(t, "Издательство C", book.Publisher)
	assert.Equal(t, 270, book.Pages)
	assert.Equal(t, entities.DefaultCoverImage, book.CoverImage)
}

func TestNewDatabase_SkipSeed(t *testing.T) {
	db, _ := setupTestDB(t, Options{SkipSeed: true})

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInitSchema_Idempotent(t *testing.T) {
	admin := &entities.User{Username: "admin", PasswordHash: "hash-1"}
	db, dbPath := setupTestDB(t, Options{DefaultAdmin: admin})
	require.NoError(t, db.Close())

	// Second start with a different admin hash: existing row must win.
	reopened, err := NewDatabase(dbPath, Options{
		DefaultAdmin: &entities.User{Username: "admin", PasswordHash: "hash-2"},
		LogLevel:     logger.Silent,
	})
	require.NoError(t, err)
	defer reopened.Close()

	var books int64
	require.NoError(t, reopened.DB.Model(&entities.Book{}).Count(&books).Error)
	assert.Equal(t, int64(124), books)

	var users []entities.User
	require.NoError(t, reopened.DB.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "hash-1", users[0].PasswordHash)
	assert.True(t, users[0].IsAdmin)
}

func TestInitSchema_DoesNotReseedNonEmptyTable(t *testing.T) {
	db, _ := setupTestDB(t, Options{SkipSeed: true})

	require.NoError(t, db.DB.Create(&entities.Book{Title: "Solo", Author: "A", Publisher: "P", Pages: 1}).Error)
	require.NoError(t, db.InitSchema(Options{}))

	var count int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookIdentityIsUnique(t *testing.T) {
	db, _ := setupTestDB(t, Options{SkipSeed: true})

	book := entities.Book{Title: "T", Author: "A", Publisher: "P", Pages: 10}
	require.NoError(t, db.DB.Create(&book).Error)

	dup := entities.Book{Title: "T", Author: "A", Publisher: "P", Pages: 20}
	err := db.DB.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	other := entities.Book{Title: "T", Author: "A", Publisher: "Q", Pages: 20}
	assert.NoError(t, db.DB.Create(&other).Error)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
}

func TestPing(t *testing.T) {
	db, _ := setupTestDB(t, Options{SkipSeed: true})
	assert.NoError(t, db.Ping())
	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}
