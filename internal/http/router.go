package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(Logger())
	router.Use(Recovery())
	router.Use(CORS(cfg.CORSOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found", Code: codeNotFound})
	})

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	if cfg.Books != nil {
		books := NewBooksController(cfg.Books, cfg.Audit, cfg.Pagination)
		router.GET("/books", books.ListBooks)
		router.GET("/books/search/:title", books.SearchBooks)
		router.GET("/books/:id", books.GetBook)
		router.POST("/books", books.CreateBook)
		router.PUT("/books/:id", books.UpdateBook)
		router.DELETE("/books/:id", books.DeleteBook)
	}

	if cfg.Authors != nil {
		authors := NewAuthorsController(cfg.Authors, cfg.Audit, cfg.Pagination)
		router.GET("/authors", authors.ListAuthors)
		router.GET("/authors/:id/books", authors.GetAuthorBooks)
		router.POST("/authors", authors.CreateAuthor)
	}

	if cfg.AuditLog != nil {
		audit := NewAuditController(cfg.AuditLog)
		router.GET("/audit", audit.GetAuditEvents)
	}

	return router
}
