package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entities.AuditEvent{}))
	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		UserID:    1,
		Username:  "admin",
		EventType: entities.AuditEventAuth,
		Action:    "login",
		Status:    entities.AuditStatusSuccess,
	}

	require.NoError(t, repo.LogEvent(event))
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			UserID:    1,
			EventType: entities.AuditEventBook,
			Action:    "book_add",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			EventType: entities.AuditEventAuth,
			Action:    "login",
			Status:    entities.AuditStatusFailed,
		}))
	}

	t.Run("all events", func(t *testing.T) {
		events, total, err := repo.GetEvents("", 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("filtered by type", func(t *testing.T) {
		events, total, err := repo.GetEvents(entities.AuditEventBook, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		for _, e := range events {
			assert.Equal(t, entities.AuditEventBook, e.EventType)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(entities.AuditEventBook, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)
	})

	t.Run("most recent first", func(t *testing.T) {
		events, _, err := repo.GetEvents(entities.AuditEventBook, 50, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
		}
	})
}

func TestRepository_GetEventsForEntity(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	bookID := uint(7)
	other := uint(8)
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBook, Action: "book_add", EntityID: &bookID, Status: entities.AuditStatusSuccess}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBook, Action: "book_edit", EntityID: &bookID, Status: entities.AuditStatusSuccess}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{EventType: entities.AuditEventBook, Action: "book_add", EntityID: &other, Status: entities.AuditStatusSuccess}))

	events, err := repo.GetEventsForEntity(bookID)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
