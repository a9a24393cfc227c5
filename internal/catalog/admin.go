package catalog

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/uploads"
	"github.com/mrlokans/catalog/internal/validator"
)

// BookInput is the submitted add/edit form. Pages stays a string so that
// a non-numeric value can be reported instead of failing form binding.
type BookInput struct {
	Title     string `form:"title" json:"title" validate:"required,max=512"`
	Author    string `form:"author" json:"author" validate:"required,max=256"`
	Pages     string `form:"pages" json:"pages" validate:"required"`
	Publisher string `form:"publisher" json:"publisher" validate:"required,max=256"`
}

var fieldLabels = map[string]string{
	"Title":     "title",
	"Author":    "author",
	"Pages":     "pages",
	"Publisher": "publisher",
}

// InputFromBook fills a form with the stored values of b.
func InputFromBook(b *entities.Book) BookInput {
	return BookInput{
		Title:     b.Title,
		Author:    b.Author,
		Pages:     strconv.Itoa(b.Pages),
		Publisher: b.Publisher,
	}
}

// normalize trims every field, validates them and applies the result to b.
func (in BookInput) normalize(b *entities.Book) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Pages = strings.TrimSpace(in.Pages)
	in.Publisher = strings.TrimSpace(in.Publisher)

	fields := map[string]string{}
	if err := validator.GetValidator().Struct(in); err != nil {
		for field, tag := range validator.FieldErrors(err) {
			label := fieldLabels[field]
			switch tag {
			case "required":
				fields[label] = fmt.Sprintf("%s is required", label)
			default:
				fields[label] = fmt.Sprintf("%s is too long", label)
			}
		}
	}

	pages := 0
	if _, missing := fields["pages"]; !missing {
		n, err := strconv.Atoi(in.Pages)
		if err != nil || n <= 0 {
			fields["pages"] = "pages must be a positive whole number"
		}
		pages = n
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	b.Title = in.Title
	b.Author = in.Author
	b.Pages = pages
	b.Publisher = in.Publisher
	return nil
}

func checkCover(cover *uploads.File) error {
	if cover.Present() && !uploads.IsAllowedExtension(cover.Name) {
		return newValidationError("cover_image", "cover image must be a png, jpg or jpeg file")
	}
	return nil
}

// GetBook returns a single book.
func (s *Service) GetBook(id uint) (*entities.Book, error) {
	book, err := s.books.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to load book %d: %w", id, err)
	}
	return book, nil
}

// AddBook validates and stores a new book. A cover is optional; without
// one the book gets the default cover. Nothing is written unless every
// check passes.
func (s *Service) AddBook(session *auth.SessionData, in BookInput, cover *uploads.File) (*entities.Book, error) {
	if !session.CanManageBooks() {
		return nil, ErrForbidden
	}

	book := &entities.Book{CoverImage: entities.DefaultCoverImage}
	if err := in.normalize(book); err != nil {
		return nil, err
	}
	if err := checkCover(cover); err != nil {
		return nil, err
	}

	err := s.saveBook(book, 0, cover, func() error { return s.books.CreateBook(book) })
	s.record(session, audit.ActionBookAdd, book.ID, book.Title, err)
	if err != nil {
		return nil, err
	}

	log.Printf("Book %d added by %s: %q", book.ID, session.Username, book.Title)
	return book, nil
}

// EditBook replaces the fields of an existing book. The stored cover is
// kept unless a new one is uploaded.
func (s *Service) EditBook(session *auth.SessionData, id uint, in BookInput, cover *uploads.File) (*entities.Book, error) {
	if !session.CanManageBooks() {
		return nil, ErrForbidden
	}

	existing, err := s.GetBook(id)
	if err != nil {
		return nil, err
	}

	book := *existing
	if err := in.normalize(&book); err != nil {
		return nil, err
	}
	if err := checkCover(cover); err != nil {
		return nil, err
	}

	err = s.saveBook(&book, id, cover, func() error { return s.books.UpdateBook(&book) })
	s.record(session, audit.ActionBookEdit, id, book.Title, err)
	if err != nil {
		return nil, err
	}

	if book.CoverImage != existing.CoverImage && uploads.IsGeneratedName(existing.CoverImage) {
		s.removeCover(existing.CoverImage)
	}

	log.Printf("Book %d updated by %s", id, session.Username)
	return &book, nil
}

// DeleteBook removes a book and its uploaded cover. Shipped covers such as
// the seed images stay on disk.
func (s *Service) DeleteBook(session *auth.SessionData, id uint) error {
	if !session.CanManageBooks() {
		return ErrForbidden
	}

	book, err := s.GetBook(id)
	if err != nil {
		return err
	}

	err = s.books.DeleteBook(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = ErrBookNotFound
	} else if err != nil {
		err = fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	s.record(session, audit.ActionBookDel, id, book.Title, err)
	if err != nil {
		return err
	}

	if uploads.IsGeneratedName(book.CoverImage) {
		s.removeCover(book.CoverImage)
	}

	log.Printf("Book %d deleted by %s", id, session.Username)
	return nil
}

// saveBook runs the duplicate check, stores the cover and then the row.
// A cover stored for a row that could not be written is removed again.
func (s *Service) saveBook(book *entities.Book, excludeID uint, cover *uploads.File, write func() error) error {
	dup, err := s.books.FindDuplicate(book.Title, book.Author, book.Publisher, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check for duplicates: %w", err)
	}
	if dup {
		return ErrDuplicateBook
	}

	stored := ""
	if cover.Present() {
		name, err := s.covers.Save(cover)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCoverStorage, err)
		}
		stored = name
		book.CoverImage = name
	}

	if err := write(); err != nil {
		if stored != "" {
			s.removeCover(stored)
		}
		switch {
		case errors.Is(err, database.ErrDuplicateKey):
			return ErrDuplicateBook
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrBookNotFound
		}
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (s *Service) removeCover(name string) {
	if err := s.covers.Remove(name); err != nil {
		log.Printf("Failed to remove cover %s: %v", name, err)
	}
}

func (s *Service) record(session *auth.SessionData, action string, bookID uint, title string, err error) {
	if s.audit != nil {
		s.audit.LogBook(session.UserID, session.Username, action, bookID, title, err)
	}
}
