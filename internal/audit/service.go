// Package audit records authentication and catalogue changes.
package audit

import (
	"fmt"
	"log"

	"github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/entities"
)

// Actions recorded by the application.
const (
	ActionLogin    = "login"
	ActionLogout   = "logout"
	ActionRegister = "register"
	ActionBookAdd  = "book_add"
	ActionBookEdit = "book_edit"
	ActionBookDel  = "book_delete"
)

// Service provides high-level audit logging functionality.
// Events are written synchronously; a failed write is logged and never
// fails the operation being audited.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

func (s *Service) record(event *entities.AuditEvent) {
	if err := s.repo.LogEvent(event); err != nil {
		log.Printf("Failed to log audit event %s: %v", event.Action, err)
	}
}

// LogAuth records a login, logout or registration.
func (s *Service) LogAuth(userID uint, username, action, ipAddr string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		Username:  truncate(username, 100),
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ipAddr,
		Status:    entities.AuditStatusSuccess,
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.record(event)
}

// LogBook records an admin change to a book. A nil err marks success.
func (s *Service) LogBook(userID uint, username, action string, bookID uint, title string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		Username:    truncate(username, 100),
		EventType:   entities.AuditEventBook,
		Action:      action,
		Description: truncate(fmt.Sprintf("%s: %s", action, title), 500),
		Status:      entities.AuditStatusSuccess,
	}
	if bookID != 0 {
		event.EntityID = &bookID
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.record(event)
}

// GetEvents retrieves paginated audit events. An empty type returns all.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// GetBookHistory returns every recorded change to a book.
func (s *Service) GetBookHistory(bookID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(bookID)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
