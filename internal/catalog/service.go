// Package catalog implements the book listing and the admin operations on books.
//
// Listing is public. AddBook, EditBook and DeleteBook take the caller's
// session explicitly and refuse anyone without the admin flag before
// touching input or storage.
package catalog

import (
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/uploads"
)

// BookStore is the persistence the catalogue needs.
type BookStore interface {
	ListBooks(f books.Filter, order books.Order, limit, offset int) ([]entities.Book, int64, error)
	GetAuthors() ([]string, error)
	GetPublishers() ([]string, error)
	GetBookByID(id uint) (*entities.Book, error)
	FindDuplicate(title, author, publisher string, excludeID uint) (bool, error)
	CreateBook(book *entities.Book) error
	UpdateBook(book *entities.Book) error
	DeleteBook(id uint) error
}

// CoverStore persists uploaded cover images.
type CoverStore interface {
	Save(f *uploads.File) (string, error)
	Remove(name string) error
}

// AuditLogger receives the outcome of every admin change.
type AuditLogger interface {
	LogBook(userID uint, username, action string, bookID uint, title string, err error)
}

type Service struct {
	books    BookStore
	covers   CoverStore
	audit    AuditLogger
	pageSize int
}

// NewService wires the catalogue. audit may be nil; pageSize <= 0 uses the default of 21.
func NewService(books BookStore, covers CoverStore, audit AuditLogger, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return &Service{
		books:    books,
		covers:   covers,
		audit:    audit,
		pageSize: pageSize,
	}
}

// PageSize returns the number of books per listing page.
func (s *Service) PageSize() int {
	return s.pageSize
}
