package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/entities"
)

// DriverName is the database/sql driver used for the catalogue: go-sqlite3
// with a unicode_lower() function, since SQLite's own LOWER() only folds ASCII.
const DriverName = "sqlite3_catalog"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
		},
	})
}

// Dialector returns a GORM dialector for dsn on the catalogue driver.
func Dialector(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: DriverName, DSN: dsn})
}

// ErrDuplicateKey is returned by repositories when a write violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")

// Options controls first-run initialization.
type Options struct {
	// DefaultAdmin is inserted on every start; an existing username is left untouched.
	DefaultAdmin *entities.User
	// SkipSeed disables the sample catalogue insert (used by tests that need an empty table).
	SkipSeed bool
	LogLevel logger.LogLevel
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite store, creates the schema and seeds first-run data.
// Any error here means the store is unusable and callers should abort startup.
func NewDatabase(dbPath string, opts Options) (*Database, error) {
	logLevel := opts.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_busy_timeout=5000&_foreign_keys=1"
	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// SQLite serializes writers anyway; a single connection also keeps
	// ":memory:" databases alive across calls.
	sqlDB.SetMaxOpenConns(1)

	database := &Database{DB: db}
	if err := database.InitSchema(opts); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

// InitSchema is idempotent: it migrates tables, ensures the default admin
// and seeds books only when the books table is empty.
func (d *Database) InitSchema(opts Options) error {
	err := d.DB.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if opts.DefaultAdmin != nil {
		if err := d.ensureAdmin(opts.DefaultAdmin); err != nil {
			return fmt.Errorf("failed to create default admin: %w", err)
		}
	}

	if !opts.SkipSeed {
		if err := d.seedBooks(); err != nil {
			return fmt.Errorf("failed to seed books: %w", err)
		}
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the store is reachable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) ensureAdmin(admin *entities.User) error {
	user := *admin
	user.IsAdmin = true
	result := d.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Created default admin account %q", user.Username)
	}
	return nil
}

func (d *Database) seedBooks() error {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	books := SampleBooks()
	if err := d.DB.CreateInBatches(&books, 50).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d sample books", len(books))
	return nil
}

// IsUniqueViolation reports whether err was raised by a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
