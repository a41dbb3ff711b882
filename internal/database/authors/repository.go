// Package authors provides database operations for authors.
//
// Authors are create/read-only: there is no update or delete.
package authors

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/library-api/internal/database"
	"github.com/mrlokans/library-api/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAuthors returns up to limit authors after skipping skip, in id order.
func (r *Repository) ListAuthors(ctx context.Context, skip, limit int) ([]entities.Author, error) {
	authors := []entities.Author{}
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// GetAuthor returns nil without an error when the author does not exist.
func (r *Repository) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author %d: %w", id, err)
	}
	return &author, nil
}

// GetAuthorBooks returns the author's books in id order. A missing author
// and an author without books both yield an empty slice.
func (r *Repository) GetAuthorBooks(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&author, authorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []entities.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get books for author %d: %w", authorID, err)
	}
	if author.Books == nil {
		return []entities.Book{}, nil
	}
	return author.Books, nil
}

// CreateAuthor inserts the author and returns the stored row.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	author.ID = 0
	author.Books = nil
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", database.ClassifyError(err))
	}

	var stored entities.Author
	if err := r.db.WithContext(ctx).First(&stored, author.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload author %d: %w", author.ID, err)
	}
	return &stored, nil
}
