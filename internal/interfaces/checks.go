package interfaces

// Compile-time checks that the concrete types satisfy the interfaces their
// consumers declare.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library-api/internal/audit"
	"github.com/mrlokans/library-api/internal/database/authors"
	"github.com/mrlokans/library-api/internal/database/books"
	"github.com/mrlokans/library-api/internal/http"
	"github.com/mrlokans/library-api/internal/scheduler"
	"github.com/mrlokans/library-api/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)

var _ http.AuthorStore = (*authors.Repository)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ http.AuditRecorder = (*audit.Service)(nil)
var _ http.AuditLog = (*audit.Service)(nil)

// =============================================================================
// Background Maintenance
// =============================================================================

var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
