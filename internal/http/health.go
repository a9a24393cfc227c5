package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping() error
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports the state of the catalogue store and the upload folder.
type HealthController struct {
	db      Pinger
	uploads Pinger
	version string
}

// NewHealthController creates the /health handler. A nil dependency is
// reported as "not configured" and does not make the service unhealthy.
func NewHealthController(db, uploads Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		uploads: uploads,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{
		"database": check(h.db),
		"uploads":  check(h.uploads),
	}

	status := "healthy"
	for _, result := range checks {
		if result != "ok" && result != "not configured" {
			status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}

func check(p Pinger) string {
	if p == nil {
		return "not configured"
	}
	if err := p.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
