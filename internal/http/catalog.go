package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
)

// CatalogController serves the public catalogue pages.
type CatalogController struct {
	catalog *catalog.Service
	render  *Renderer
}

func NewCatalogController(service *catalog.Service, render *Renderer) *CatalogController {
	return &CatalogController{
		catalog: service,
		render:  render,
	}
}

// Index lists one page of books.
// GET /?page=&sort_field=&sort_order=&title=&author=&publisher=&pages_min=&pages_max=
func (cc *CatalogController) Index(c *gin.Context) {
	status := http.StatusOK
	data := gin.H{
		"Title":      "Catalogue",
		"SortFields": catalog.SortFields,
	}

	params, err := catalog.ParseListParams(c.Request.URL.Query())
	if err != nil {
		// Bad page bounds are dropped and reported; the rest of the filter still applies.
		var verr *catalog.ValidationError
		if !errors.As(err, &verr) {
			log.Printf("Failed to parse listing parameters: %v", err)
			cc.render.Error(c, http.StatusInternalServerError, "Failed to load books")
			return
		}
		status = http.StatusBadRequest
		data["Error"] = strings.Join(verr.Messages(), "; ")
	}

	result, err := cc.catalog.ListBooks(params)
	if err != nil {
		log.Printf("Failed to list books: %v", err)
		cc.render.Error(c, http.StatusInternalServerError, "Failed to load books")
		return
	}

	data["Result"] = result
	data["Params"] = params
	cc.render.Page(c, status, "index.html", data)
}

// BookPage shows a single book.
// GET /book/:id
func (cc *CatalogController) BookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		cc.render.Error(c, http.StatusBadRequest, "Invalid book ID")
		return
	}

	book, err := cc.catalog.GetBook(id)
	if err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			cc.render.Error(c, http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("Failed to load book %d: %v", id, err)
		cc.render.Error(c, http.StatusInternalServerError, "Failed to load book")
		return
	}

	cc.render.Page(c, http.StatusOK, "book.html", gin.H{
		"Title": book.Title,
		"Book":  book,
	})
}
