package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
)

// Renderer writes pages as HTML when templates are loaded and as JSON otherwise.
type Renderer struct {
	sessions *auth.SessionManager
	html     bool
}

func NewRenderer(sessions *auth.SessionManager, html bool) *Renderer {
	return &Renderer{sessions: sessions, html: html}
}

// Page renders the named template with the auth data and pending flashes added.
func (r *Renderer) Page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Auth"] = GetAuthTemplateData(c)
	if r.sessions != nil {
		data["Flashes"] = r.sessions.PopFlashes(c.Request.Context())
	}

	if !r.html {
		c.JSON(status, data)
		return
	}
	data["CSRFField"] = template.HTML(auth.CSRFTokenField(c))
	c.HTML(status, name, data)
}

// Error renders the error page.
func (r *Renderer) Error(c *gin.Context, status int, message string) {
	r.Page(c, status, "error.html", gin.H{
		"Title": http.StatusText(status),
		"Error": message,
	})
}

// Flash queues a message for the next rendered page.
func (r *Renderer) Flash(c *gin.Context, category, message string) {
	if r.sessions != nil {
		r.sessions.AddFlash(c.Request.Context(), category, message)
	}
}

// RedirectWithFlash queues a message and redirects with 302 Found.
func (r *Renderer) RedirectWithFlash(c *gin.Context, location, category, message string) {
	r.Flash(c, category, message)
	c.Redirect(http.StatusFound, location)
}
