// Package books provides database operations for the book catalogue.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	page, total, err := repo.ListBooks(books.Filter{Author: "Стивен Кинг"}, books.Order{Column: "pages"}, 21, 0)
package books

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Filter narrows a listing. Zero-valued fields are not applied.
type Filter struct {
	Title     string // case-insensitive substring
	Author    string // exact match
	Publisher string // exact match
	PagesMin  *int
	PagesMax  *int
}

// Order is a single ORDER BY column. Column must be a real books column;
// callers are expected to have checked it against an allow-list.
type Order struct {
	Column string
	Desc   bool
}

var sortableColumns = map[string]bool{
	"id":        true,
	"title":     true,
	"author":    true,
	"pages":     true,
	"publisher": true,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// scopeFilter builds the WHERE conjunction from the filters that are present.
func scopeFilter(f Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.Title != "" {
			q = q.Where(`unicode_lower(title) LIKE unicode_lower(?) ESCAPE '\'`, "%"+likeEscaper.Replace(f.Title)+"%")
		}
		if f.Author != "" {
			q = q.Where("author = ?", f.Author)
		}
		if f.Publisher != "" {
			q = q.Where("publisher = ?", f.Publisher)
		}
		if f.PagesMin != nil {
			q = q.Where("pages >= ?", *f.PagesMin)
		}
		if f.PagesMax != nil {
			q = q.Where("pages <= ?", *f.PagesMax)
		}
		return q
	}
}

// ListBooks returns one page of books matching the filter and the total match count.
func (r *Repository) ListBooks(f Filter, order Order, limit, offset int) ([]entities.Book, int64, error) {
	if !sortableColumns[order.Column] {
		return nil, 0, fmt.Errorf("unsupported sort column %q", order.Column)
	}

	var total int64
	if err := r.db.Model(&entities.Book{}).Scopes(scopeFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var books []entities.Book
	err := r.db.Scopes(scopeFilter(f)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: order.Column}, Desc: order.Desc}).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// GetAuthors returns every distinct author, sorted ascending.
func (r *Repository) GetAuthors() ([]string, error) {
	return r.distinct("author")
}

// GetPublishers returns every distinct publisher, sorted ascending.
func (r *Repository) GetPublishers() ([]string, error) {
	return r.distinct("publisher")
}

func (r *Repository) distinct(column string) ([]string, error) {
	values := []string{}
	err := r.db.Model(&entities.Book{}).
		Distinct(column).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}}).
		Pluck(column, &values).Error
	return values, err
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindDuplicate reports whether another book has the same title, author and publisher.
// excludeID skips the book being edited; pass 0 when creating.
func (r *Repository) FindDuplicate(title, author, publisher string, excludeID uint) (bool, error) {
	q := r.db.Model(&entities.Book{}).
		Where("title = ? AND author = ? AND publisher = ?", title, author, publisher)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

// CreateBook inserts a book. Returns database.ErrDuplicateKey on a (title, author, publisher) clash.
func (r *Repository) CreateBook(book *entities.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return database.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// UpdateBook overwrites every editable column of an existing book.
// Returns gorm.ErrRecordNotFound if the row vanished, database.ErrDuplicateKey on a clash.
func (r *Repository) UpdateBook(book *entities.Book) error {
	result := r.db.Model(&entities.Book{}).Where("id = ?", book.ID).Updates(map[string]any{
		"title":       book.Title,
		"author":      book.Author,
		"pages":       book.Pages,
		"publisher":   book.Publisher,
		"cover_image": book.CoverImage,
	})
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return database.ErrDuplicateKey
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBook removes a book row. Returns gorm.ErrRecordNotFound if nothing was deleted.
func (r *Repository) DeleteBook(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountBooks returns the total number of books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
