// Package interfaces lists the seams between the layers of the library API.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: book persistence used by the books handlers (internal/http/books.go)
//   - AuthorStore: author persistence used by the authors handlers (internal/http/authors.go)
//
// ## Audit Interfaces
//
//   - AuditRecorder: non-blocking recording of successful writes (internal/http/audit.go)
//   - AuditLog: reading back recorded events (internal/http/audit.go)
//   - AuditEventCleaner: retention pruning run by the task queue (internal/tasks/cleanup_audit.go)
//
// ## Scheduling Interfaces
//
//   - CleanupEnqueuer: hands scheduled cleanup to the task queue (internal/scheduler/audit_cleanup.go)
//
// # Adding a New Resource
//
// To expose a new table (e.g., publishers):
//
//  1. Add the entity in internal/entities/ and register it in database.Migrate.
//
//  2. Create sub-package internal/database/publishers/:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Declare the store interface next to its handlers in internal/http/
//     and add the routes in router.go.
//
//  4. Add a compile-time check to checks.go:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the current set.
package interfaces
