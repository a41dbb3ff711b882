// Package books provides database operations for books.
//
// # Usage
//
//	repo := books.NewRepository(db.DB)
//	book, err := repo.GetBook(ctx, 1)
//	if book == nil { /* not found */ }
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/library-api/internal/database"
	"github.com/mrlokans/library-api/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns up to limit books after skipping skip, in id order.
func (r *Repository) ListBooks(ctx context.Context, skip, limit int) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// GetBook returns nil without an error when the book does not exist.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return &book, nil
}

// CreateBook inserts the book and returns the stored row.
// Fails with database.ErrUniqueViolation on a duplicate ISBN and
// database.ErrForeignKeyViolation when the author does not exist.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	book.ID = 0
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", database.ClassifyError(err))
	}

	stored, err := r.GetBook(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("book %d vanished after insert", book.ID)
	}
	return stored, nil
}

// UpdateBook writes only the given columns. It returns nil without writing
// when the book does not exist. An empty change set is a no-op read.
func (r *Repository) UpdateBook(ctx context.Context, id uint, changes map[string]any) (*entities.Book, error) {
	book, err := r.GetBook(ctx, id)
	if err != nil || book == nil {
		return nil, err
	}

	if len(changes) > 0 {
		err := r.db.WithContext(ctx).
			Model(&entities.Book{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update book %d: %w", id, database.ClassifyError(err))
		}
	}

	updated, err := r.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Deleted concurrently between the write and the re-read.
		return nil, nil
	}
	return updated, nil
}

// DeleteBook returns false when there was nothing to delete.
func (r *Repository) DeleteBook(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete book %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SearchBooksByTitle returns books whose title contains fragment, ignoring
// case. LIKE wildcards in fragment are matched literally.
func (r *Repository) SearchBooksByTitle(ctx context.Context, fragment string) ([]entities.Book, error) {
	books := []entities.Book{}
	pattern := "%" + escapeLike(fragment) + "%"
	err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	return books, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
