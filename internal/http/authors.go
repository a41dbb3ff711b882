package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library-api/internal/entities"
	"github.com/mrlokans/library-api/internal/schemas"
)

// AuthorStore is the persistence needed by AuthorsController.
type AuthorStore interface {
	ListAuthors(ctx context.Context, skip, limit int) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	GetAuthorBooks(ctx context.Context, authorID uint) ([]entities.Book, error)
	CreateAuthor(ctx context.Context, author *entities.Author) (*entities.Author, error)
}

type AuthorsController struct {
	store      AuthorStore
	audit      AuditRecorder
	pagination Pagination
}

func NewAuthorsController(store AuthorStore, audit AuditRecorder, pagination Pagination) *AuthorsController {
	return &AuthorsController{
		store:      store,
		audit:      audit,
		pagination: pagination,
	}
}

// ListAuthors returns a page of authors
// GET /authors?skip=0&limit=100
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	skip, limit, ok := parsePagination(c, ac.pagination, "skip")
	if !ok {
		return
	}

	authors, err := ac.store.ListAuthors(c.Request.Context(), skip, limit)
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}

	c.JSON(http.StatusOK, schemas.NewAuthorResponses(authors))
}

// GetAuthorBooks lists an author's books. 404 only when the author is
// missing; an author without books gets an empty list.
// GET /authors/:id/books
func (ac *AuthorsController) GetAuthorBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Author")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	author, err := ac.store.GetAuthor(ctx, id)
	if err != nil {
		respondInternalError(c, err, "get author")
		return
	}
	if author == nil {
		respondNotFound(c, "Author")
		return
	}

	books, err := ac.store.GetAuthorBooks(ctx, id)
	if err != nil {
		respondInternalError(c, err, "get author books")
		return
	}

	c.JSON(http.StatusOK, schemas.NewBookResponses(books))
}

// CreateAuthor stores a new author
// POST /authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req schemas.AuthorCreate
	if !bindAndValidate(c, &req) {
		return
	}

	author, err := ac.store.CreateAuthor(c.Request.Context(), req.ToEntity())
	if err != nil {
		respondStoreError(c, err, "create author")
		return
	}

	if ac.audit != nil {
		ac.audit.LogCreate("author", author.ID, author.Name, requestID(c))
	}

	respondCreated(c, schemas.NewAuthorResponse(author))
}
