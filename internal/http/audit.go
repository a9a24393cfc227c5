package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/entities"
)

const auditPageSize = 25

type AuditController struct {
	auditService *audit.Service
	render       *Renderer
}

func NewAuditController(auditService *audit.Service, render *Renderer) *AuditController {
	return &AuditController{
		auditService: auditService,
		render:       render,
	}
}

// AuditLogPage renders the audit log for administrators.
// GET /admin/audit?type=&page=
func (ac *AuditController) AuditLogPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	eventType := entities.AuditEventType(c.Query("type"))
	if !isKnownEventType(eventType) {
		eventType = ""
	}

	events, total, err := ac.auditService.GetEvents(eventType, auditPageSize, (page-1)*auditPageSize)
	if err != nil {
		log.Printf("Failed to load audit events: %v", err)
		ac.render.Error(c, http.StatusInternalServerError, "Failed to load audit events")
		return
	}

	totalPages := (int(total) + auditPageSize - 1) / auditPageSize
	if totalPages < 1 {
		totalPages = 1
	}

	ac.render.Page(c, http.StatusOK, "audit.html", gin.H{
		"Title":       "Audit log",
		"Events":      events,
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"TotalEvents": total,
		"EventType":   string(eventType),
		"EventTypes":  getEventTypes(),
	})
}

func isKnownEventType(t entities.AuditEventType) bool {
	return t == entities.AuditEventAuth || t == entities.AuditEventBook
}

func getEventTypes() []EventTypeOption {
	return []EventTypeOption{
		{Value: "", Label: "All Events"},
		{Value: string(entities.AuditEventAuth), Label: "Authentication"},
		{Value: string(entities.AuditEventBook), Label: "Books"},
	}
}

type EventTypeOption struct {
	Value string
	Label string
}
