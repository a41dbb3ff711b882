package http

import (
	"context"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-api/internal/entities"
	"github.com/mrlokans/library-api/internal/schemas"
)

// BookStore is the persistence needed by BooksController.
type BookStore interface {
	ListBooks(ctx context.Context, skip, limit int) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error)
	UpdateBook(ctx context.Context, id uint, changes map[string]any) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) (bool, error)
	SearchBooksByTitle(ctx context.Context, fragment string) ([]entities.Book, error)
}

type BooksController struct {
	store      BookStore
	audit      AuditRecorder
	pagination Pagination
}

func NewBooksController(store BookStore, audit AuditRecorder, pagination Pagination) *BooksController {
	return &BooksController{
		store:      store,
		audit:      audit,
		pagination: pagination,
	}
}

// ListBooks returns a page of books
// GET /books?skip=0&limit=100
func (bc *BooksController) ListBooks(c *gin.Context) {
	skip, limit, ok := parsePagination(c, bc.pagination, "skip")
	if !ok {
		return
	}

	books, err := bc.store.ListBooks(c.Request.Context(), skip, limit)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, schemas.NewBookResponses(books))
}

// GetBook returns a single book
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	book, err := bc.store.GetBook(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book")
		return
	}

	c.JSON(http.StatusOK, schemas.NewBookResponse(book))
}

// CreateBook stores a new book
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req schemas.BookCreate
	if !bindAndValidate(c, &req) {
		return
	}

	book, err := bc.store.CreateBook(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondStoreError(c, err, "create book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogCreate("book", book.ID, book.Title, requestID(c))
	}

	respondCreated(c, schemas.NewBookResponse(book))
}

// UpdateBook applies a partial update
// PUT /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	var req schemas.BookUpdate
	if !bindAndValidate(c, &req) {
		return
	}

	changes := req.Changes()
	book, err := bc.store.UpdateBook(c.Request.Context(), id, changes)
	if err != nil {
		respondStoreError(c, err, "update book")
		return
	}
	if book == nil {
		respondNotFound(c, "Book")
		return
	}

	if bc.audit != nil && len(changes) > 0 {
		bc.audit.LogUpdate("book", book.ID, book.Title, changedFields(changes), requestID(c))
	}

	c.JSON(http.StatusOK, schemas.NewBookResponse(book))
}

// DeleteBook removes a book
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Book")
	if !ok {
		return
	}

	deleted, err := bc.store.DeleteBook(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if !deleted {
		respondNotFound(c, "Book")
		return
	}

	if bc.audit != nil {
		bc.audit.LogDelete("book", id, requestID(c))
	}

	respondSuccess(c, "Book deleted successfully")
}

// SearchBooks finds books by a case-insensitive title fragment
// GET /books/search/:title
func (bc *BooksController) SearchBooks(c *gin.Context) {
	books, err := bc.store.SearchBooksByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	c.JSON(http.StatusOK, schemas.NewBookResponses(books))
}

func changedFields(changes map[string]any) []string {
	fields := make([]string, 0, len(changes))
	for name := range changes {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}
