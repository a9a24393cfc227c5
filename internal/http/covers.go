package http

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/uploads"
)

// CoversController serves book cover images from the upload directory.
type CoversController struct {
	catalog *catalog.Service
	store   *uploads.Store
}

// NewCoversController creates a new CoversController.
func NewCoversController(service *catalog.Service, store *uploads.Store) *CoversController {
	return &CoversController{
		catalog: service,
		store:   store,
	}
}

// GetCover serves the stored cover of a book. Books whose file is missing
// get the default cover, if that exists in the upload directory.
// GET /book/:id/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	book, err := cc.catalog.GetBook(id)
	if err != nil {
		if errors.Is(err, catalog.ErrBookNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err, "load cover")
		return
	}

	for _, name := range []string{book.CoverImage, entities.DefaultCoverImage} {
		path, err := cc.store.Path(name)
		if err != nil {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.Header("Cache-Control", "public, max-age=86400")
			c.File(path)
			return
		}
	}

	c.Status(http.StatusNotFound)
}
