package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	dbaudit "github.com/mrlokans/library-api/internal/database/audit"
	"github.com/mrlokans/library-api/internal/entities"
)

const (
	defaultAuditLimit = 25
	maxAuditLimit     = 100
)

// AuditRecorder records successful writes. Implementations must not block.
type AuditRecorder interface {
	LogCreate(entityType string, entityID uint, name, requestID string)
	LogUpdate(entityType string, entityID uint, name string, fields []string, requestID string)
	LogDelete(entityType string, entityID uint, requestID string)
}

// AuditLog reads back recorded events.
type AuditLog interface {
	GetEvents(ctx context.Context, filter dbaudit.EventFilter, limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	log AuditLog
}

func NewAuditController(log AuditLog) *AuditController {
	return &AuditController{log: log}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /audit?limit=25&offset=0&action=book_create&entity_type=book&entity_id=1
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	fields := map[string]string{}
	offset := parseNonNegativeQuery(c, "offset", 0, fields)
	limit := parseNonNegativeQuery(c, "limit", defaultAuditLimit, fields)
	if _, bad := fields["limit"]; !bad && (limit < 1 || limit > maxAuditLimit) {
		fields["limit"] = "must be between 1 and " + strconv.Itoa(maxAuditLimit)
	}

	filter := dbaudit.EventFilter{
		Action:     entities.AuditAction(c.Query("action")),
		EntityType: c.Query("entity_type"),
	}
	if raw, present := c.GetQuery("entity_id"); present {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fields["entity_id"] = "must be an integer"
		} else {
			entityID := uint(id)
			filter.EntityID = &entityID
		}
	}

	if len(fields) > 0 {
		respondValidationError(c, fields)
		return
	}

	events, total, err := ac.log.GetEvents(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
