package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library-api/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func uintPtr(v uint) *uint { return &v }

func TestRepository_LogEvent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		Action:      entities.AuditActionBookCreate,
		EntityType:  "book",
		EntityID:    uintPtr(1),
		Description: "Created book War and Peace",
	}

	err := repo.LogEvent(ctx, event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_GetEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			Action:     entities.AuditActionBookCreate,
			EntityType: "book",
			EntityID:   uintPtr(uint(i + 1)),
			CreatedAt:  time.Now().Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			Action:     entities.AuditActionAuthorCreate,
			EntityType: "author",
			EntityID:   uintPtr(uint(i + 1)),
		}))
	}

	t.Run("get all events", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, EventFilter{}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("filter by action", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, EventFilter{Action: entities.AuditActionAuthorCreate}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, e := range events {
			assert.Equal(t, entities.AuditActionAuthorCreate, e.Action)
		}
	})

	t.Run("filter by entity", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, EventFilter{EntityType: "book", EntityID: uintPtr(3)}, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, uint(3), *events[0].EntityID)
	})

	t.Run("pagination", func(t *testing.T) {
		events, total, err := repo.GetEvents(ctx, EventFilter{EntityType: "book"}, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Len(t, events, 5)

		events2, _, err := repo.GetEvents(ctx, EventFilter{EntityType: "book"}, 5, 5)
		require.NoError(t, err)
		assert.Len(t, events2, 5)
		assert.NotEqual(t, events[0].ID, events2[0].ID)
	})

	t.Run("order by created_at desc", func(t *testing.T) {
		events, _, err := repo.GetEvents(ctx, EventFilter{}, 10, 0)
		require.NoError(t, err)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i-1].CreatedAt.Before(events[i].CreatedAt))
		}
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		events, _, err := repo.GetEvents(ctx, EventFilter{}, 0, -3)
		require.NoError(t, err)
		assert.Len(t, events, 20)
	})
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	now := time.Now()
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		Action:    entities.AuditActionBookDelete,
		CreatedAt: now.Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
		Action:    entities.AuditActionBookUpdate,
		CreatedAt: now.Add(-1 * time.Hour),
	}))

	deleted, err := repo.DeleteOldEvents(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, total, err := repo.GetEvents(ctx, EventFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditActionBookUpdate, events[0].Action)
}

func TestRepository_GetEventByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{Action: entities.AuditActionBookCreate, Description: "Created book"}
	require.NoError(t, repo.LogEvent(ctx, event))

	t.Run("existing event", func(t *testing.T) {
		found, err := repo.GetEventByID(ctx, event.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Created book", found.Description)
	})

	t.Run("non-existing event", func(t *testing.T) {
		found, err := repo.GetEventByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
