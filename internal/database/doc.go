// Package database owns the connection to the relational store.
//
// # Layout
//
//	database/
//	├── database.go   # Connection setup (sqlite or postgres) and migrations
//	├── errors.go     # Constraint error classification
//	├── logger.go     # gorm -> zerolog adapter
//	├── authors/      # Author reads and inserts
//	├── books/        # Book CRUD and title search
//	└── audit/        # Audit event storage
//
// Each sub-package provides a Repository built from the shared *gorm.DB:
//
//	db, err := database.NewDatabase(cfg.Database)
//	booksRepo := books.NewRepository(db.DB)
//	book, err := booksRepo.GetBook(ctx, 1)
//
// Repositories wrap constraint failures so callers can test them with
// errors.Is against ErrUniqueViolation and ErrForeignKeyViolation.
package database
