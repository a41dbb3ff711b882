package http

import (
	"github.com/mrlokans/library-api/internal/database"
)

// Pagination bounds for list endpoints. MaxLimit 0 leaves limit unbounded.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Books    BookStore
	Authors  AuthorStore

	// Audit trail (optional)
	Audit    AuditRecorder
	AuditLog AuditLog

	// Application info
	Version string

	Pagination  Pagination
	CORSOrigins []string
}
