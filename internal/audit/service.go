package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/library-api/internal/database/audit"
	"github.com/mrlokans/library-api/internal/entities"
)

const writeTimeout = 5 * time.Second

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// Failures are logged and never reach the caller.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.Log(ctx, event); err != nil {
			log.Error().Err(err).Str("action", string(event.Action)).Msg("failed to log audit event")
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogCreate records the creation of an author or a book.
func (s *Service) LogCreate(entityType string, entityID uint, name, requestID string) {
	s.LogAsync(&entities.AuditEvent{
		Action:      createAction(entityType),
		EntityType:  entityType,
		EntityID:    &entityID,
		Description: fmt.Sprintf("Created %s: %s", entityType, truncate(name, 200)),
		RequestID:   requestID,
	})
}

// LogUpdate records a partial update together with the changed fields.
func (s *Service) LogUpdate(entityType string, entityID uint, name string, fields []string, requestID string) {
	event := &entities.AuditEvent{
		Action:      entities.AuditActionBookUpdate,
		EntityType:  entityType,
		EntityID:    &entityID,
		Description: fmt.Sprintf("Updated %s: %s", entityType, truncate(name, 200)),
		RequestID:   requestID,
	}

	if md, err := json.Marshal(map[string]any{"fields": fields}); err == nil {
		event.Metadata = string(md)
	}

	s.LogAsync(event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(entityType string, entityID uint, requestID string) {
	s.LogAsync(&entities.AuditEvent{
		Action:      entities.AuditActionBookDelete,
		EntityType:  entityType,
		EntityID:    &entityID,
		Description: fmt.Sprintf("Deleted %s #%d", entityType, entityID),
		RequestID:   requestID,
	})
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, filter audit.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, filter, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func createAction(entityType string) entities.AuditAction {
	if entityType == "author" {
		return entities.AuditActionAuthorCreate
	}
	return entities.AuditActionBookCreate
}

// truncate shortens s to at most maxLen characters, never splitting a rune.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
