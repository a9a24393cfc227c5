// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, admin + sample seeding
//	├── seed.go          # First-run sample catalogue
//	├── books/           # Catalogue queries and book CRUD
//	├── users/           # User accounts
//	└── audit/           # Audit trail
//
// # Lifecycle
//
// The store is opened once at startup and shared by all requests. GORM keeps a
// single underlying connection (SQLite serializes writers), so each repository
// call is a self-contained synchronous operation. There are no cross-call
// transactions: the duplicate-book pre-check and the insert that follows are
// separate statements, with the composite unique index on
// (title, author, publisher) as the final arbiter.
//
//	db, err := database.NewDatabase("./catalog.db", database.Options{DefaultAdmin: admin})
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
package database
