package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
)

const contextKeyTemplateData = "auth_template_data"

// AuthTemplateData holds the session details every page shows.
type AuthTemplateData struct {
	LoggedIn  bool   `json:"logged_in"`
	Username  string `json:"username,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	CSRFToken string `json:"csrf_token,omitempty"`
}

// AuthContextMiddleware injects authentication data into the Gin context for templates.
// It must run after auth.SessionContext.
func AuthContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		data := AuthTemplateData{CSRFToken: auth.GetCSRFToken(c)}
		if session := auth.GetSession(c); session != nil {
			data.LoggedIn = true
			data.Username = session.Username
			data.IsAdmin = session.IsAdmin
		}

		c.Set(contextKeyTemplateData, data)
		c.Next()
	}
}

// GetAuthTemplateData retrieves auth data from context for use in templates.
func GetAuthTemplateData(c *gin.Context) AuthTemplateData {
	if data, exists := c.Get(contextKeyTemplateData); exists {
		if authData, ok := data.(AuthTemplateData); ok {
			return authData
		}
	}
	return AuthTemplateData{}
}
