package cli

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/users"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	t.Setenv("DATABASE_PATH", dbPath)
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	return dbPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test", "abc123")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func openDB(t *testing.T, path string) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(path, database.Options{SkipSeed: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := passwordReader
	t.Cleanup(func() { passwordReader = orig })
	passwordReader = func(io.Writer, string) (string, error) {
		if len(answers) == 0 {
			return "", errors.New("no more input")
		}
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}
}

func TestInitDB(t *testing.T) {
	dbPath := setupEnv(t)

	out, err := execute(t, "init-db")
	require.NoError(t, err)
	assert.Contains(t, out, "Database ready at "+dbPath)

	// Second run must not duplicate the sample books.
	_, err = execute(t, "init-db")
	require.NoError(t, err)

	db := openDB(t, dbPath)
	count, err := books.NewRepository(db.DB).CountBooks()
	require.NoError(t, err)
	assert.Equal(t, int64(len(database.SampleBooks())), count)

	admin, err := users.NewRepository(db.DB).GetUserByUsername("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.NoError(t, auth.CheckPassword("admin123", admin.PasswordHash))
}

func TestInitDB_NoSeedAndDBFlag(t *testing.T) {
	setupEnv(t)
	other := filepath.Join(t.TempDir(), "other.db")

	out, err := execute(t, "--db", other, "init-db", "--no-seed")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 books)")

	db := openDB(t, other)
	count, err := books.NewRepository(db.DB).CountBooks()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateAdmin_WithFlag(t *testing.T) {
	dbPath := setupEnv(t)

	out, err := execute(t, "create-admin", "librarian", "--password", "shelves42")
	require.NoError(t, err)
	assert.Contains(t, out, `Created administrator "librarian"`)

	db := openDB(t, dbPath)
	user, err := users.NewRepository(db.DB).GetUserByUsername("librarian")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	_, err = execute(t, "create-admin", "librarian", "--password", "shelves42")
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestCreateAdmin_Prompt(t *testing.T) {
	dbPath := setupEnv(t)
	stubPasswords(t, "shelves42", "shelves42")

	_, err := execute(t, "create-admin", "librarian")
	require.NoError(t, err)

	db := openDB(t, dbPath)
	user, err := users.NewRepository(db.DB).GetUserByUsername("librarian")
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword("shelves42", user.PasswordHash))
}

func TestCreateAdmin_Errors(t *testing.T) {
	setupEnv(t)

	t.Run("mismatched prompt", func(t *testing.T) {
		stubPasswords(t, "shelves42", "shelves43")
		_, err := execute(t, "create-admin", "librarian")
		assert.EqualError(t, err, "passwords do not match")
	})

	t.Run("short password", func(t *testing.T) {
		_, err := execute(t, "create-admin", "librarian", "-p", "abc")
		assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := execute(t, "create-admin")
		assert.Error(t, err)
	})
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.2.3", "abc123")
	assert.Equal(t, "1.2.3 (abc123)", cmd.Version)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "init-db", "create-admin"})
	assert.NotNil(t, cmd.RunE)
}
