package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/uploads"
)

// Messages shown after admin changes.
const (
	MsgBookAdded      = "Book %q has been added"
	MsgBookUpdated    = "Book %q has been updated"
	MsgBookDeleted    = "Book %q has been deleted"
	MsgBookNotFound   = "Book not found"
	MsgFixErrors      = "Please correct the errors below"
	MsgCoverFailed    = "Could not save the cover image. Please try again."
	MsgSaveFailed     = "Could not save the book. Please try again."
	MsgDeleteFailed   = "Could not delete the book. Please try again."
	MsgFormUnreadable = "Could not read the submitted form"
)

// AdminController handles book creation, editing and deletion.
// Routes are mounted behind auth.RequireAdmin; the catalogue service checks
// the session again.
type AdminController struct {
	catalog *catalog.Service
	render  *Renderer
}

func NewAdminController(service *catalog.Service, render *Renderer) *AdminController {
	return &AdminController{
		catalog: service,
		render:  render,
	}
}

// AddBookPage renders the empty book form.
// GET /add_book
func (ac *AdminController) AddBookPage(c *gin.Context) {
	ac.render.Page(c, http.StatusOK, "book_form.html", addFormData(catalog.BookInput{}))
}

// AddBook handles the add form.
// POST /add_book
func (ac *AdminController) AddBook(c *gin.Context) {
	data := addFormData(catalog.BookInput{})

	in, cover, err := bindBookForm(c)
	if err != nil {
		log.Printf("Failed to read book form: %v", err)
		data["Error"] = MsgFormUnreadable
		ac.render.Page(c, http.StatusBadRequest, "book_form.html", data)
		return
	}
	data["Form"] = in

	book, err := ac.catalog.AddBook(auth.GetSession(c), in, cover)
	if err != nil {
		ac.handleError(c, err, data)
		return
	}

	ac.render.RedirectWithFlash(c, "/", auth.FlashSuccess, fmt.Sprintf(MsgBookAdded, book.Title))
}

// EditBookPage renders the form filled with the stored book.
// GET /edit_book/:id
func (ac *AdminController) EditBookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, MsgBookNotFound)
		return
	}

	book, err := ac.catalog.GetBook(id)
	if err != nil {
		ac.handleError(c, err, nil)
		return
	}

	ac.render.Page(c, http.StatusOK, "book_form.html", editFormData(book, catalog.InputFromBook(book)))
}

// EditBook handles the edit form.
// POST /edit_book/:id
func (ac *AdminController) EditBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, MsgBookNotFound)
		return
	}

	existing, err := ac.catalog.GetBook(id)
	if err != nil {
		ac.handleError(c, err, nil)
		return
	}

	in, cover, err := bindBookForm(c)
	if err != nil {
		log.Printf("Failed to read book form: %v", err)
		data := editFormData(existing, catalog.InputFromBook(existing))
		data["Error"] = MsgFormUnreadable
		ac.render.Page(c, http.StatusBadRequest, "book_form.html", data)
		return
	}

	book, err := ac.catalog.EditBook(auth.GetSession(c), id, in, cover)
	if err != nil {
		ac.handleError(c, err, editFormData(existing, in))
		return
	}

	ac.render.RedirectWithFlash(c, "/", auth.FlashSuccess, fmt.Sprintf(MsgBookUpdated, book.Title))
}

// DeleteBook removes a book.
// POST /admin/delete_book/:id
func (ac *AdminController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, MsgBookNotFound)
		return
	}

	book, err := ac.catalog.GetBook(id)
	if err != nil {
		ac.handleError(c, err, nil)
		return
	}

	if err := ac.catalog.DeleteBook(auth.GetSession(c), id); err != nil {
		if errors.Is(err, catalog.ErrForbidden) || errors.Is(err, catalog.ErrBookNotFound) {
			ac.handleError(c, err, nil)
			return
		}
		log.Printf("Failed to delete book %d: %v", id, err)
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, MsgDeleteFailed)
		return
	}

	ac.render.RedirectWithFlash(c, "/", auth.FlashSuccess, fmt.Sprintf(MsgBookDeleted, book.Title))
}

// handleError turns a catalogue error into a redirect or a re-rendered form.
// data is the form to re-render; it may be nil for errors that always redirect.
func (ac *AdminController) handleError(c *gin.Context, err error, data gin.H) {
	var verr *catalog.ValidationError
	switch {
	case errors.Is(err, catalog.ErrForbidden):
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, auth.MsgAccessDenied)
		return
	case errors.Is(err, catalog.ErrBookNotFound):
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, MsgBookNotFound)
		return
	case data == nil:
		log.Printf("Book operation failed: %v", err)
		ac.render.RedirectWithFlash(c, "/", auth.FlashError, MsgSaveFailed)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		data["Error"] = MsgFixErrors
		data["Errors"] = verr.Fields
	case errors.Is(err, catalog.ErrDuplicateBook):
		status = http.StatusConflict
		data["Error"] = catalog.ErrDuplicateBook.Error()
	case errors.Is(err, catalog.ErrCoverStorage):
		log.Printf("Cover upload failed: %v", err)
		data["Error"] = MsgCoverFailed
	default:
		log.Printf("Book save failed: %v", err)
		data["Error"] = MsgSaveFailed
	}
	ac.render.Page(c, status, "book_form.html", data)
}

// bindBookForm reads the text fields and the optional cover_image file.
func bindBookForm(c *gin.Context) (catalog.BookInput, *uploads.File, error) {
	var in catalog.BookInput
	if err := c.ShouldBind(&in); err != nil {
		return in, nil, err
	}

	fh, err := c.FormFile("cover_image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, nil, nil
		}
		return in, nil, err
	}
	return in, uploads.FromFileHeader(fh), nil
}

func addFormData(in catalog.BookInput) gin.H {
	return gin.H{
		"Title":  "Add book",
		"Action": "/add_book",
		"Form":   in,
	}
}

func editFormData(book *entities.Book, in catalog.BookInput) gin.H {
	return gin.H{
		"Title":  "Edit book",
		"Action": fmt.Sprintf("/edit_book/%d", book.ID),
		"Book":   book,
		"Form":   in,
	}
}
