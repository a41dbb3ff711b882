package entities

import "time"

type AuditAction string

const (
	AuditActionAuthorCreate AuditAction = "author_create"
	AuditActionBookCreate   AuditAction = "book_create"
	AuditActionBookUpdate   AuditAction = "book_update"
	AuditActionBookDelete   AuditAction = "book_delete"
)

type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Action      AuditAction `gorm:"size:50;index" json:"action"`
	EntityType  string      `gorm:"size:50" json:"entity_type"` // "author" or "book"
	EntityID    *uint       `gorm:"index" json:"entity_id,omitempty"`
	Description string      `gorm:"size:500" json:"description"`
	Metadata    string      `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	RequestID   string      `gorm:"size:64" json:"request_id,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
