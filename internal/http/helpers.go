package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mrlokans/library-api/internal/database"
	"github.com/mrlokans/library-api/internal/schemas"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

const (
	codeValidation    = "validation_error"
	codeNotFound      = "not_found"
	codeDuplicate     = "duplicate"
	codeUnknownAuthor = "unknown_author"
	codeInternal      = "internal_error"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: codeNotFound})
}

// respondValidationError sends a 422 with per-field messages.
func respondValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    codeValidation,
		Details: fields,
	})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	requestLogger(c).Error().Err(err).Str("context", context).Msg("internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: codeInternal})
}

// respondStoreError maps repository errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, database.ErrUniqueViolation):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "Book with this ISBN already exists",
			Code:    codeDuplicate,
			Details: map[string]string{"isbn": "must be unique"},
		})
	case errors.Is(err, database.ErrForeignKeyViolation):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Author not found",
			Code:    codeUnknownAuthor,
			Details: map[string]string{"author_id": "does not reference an existing author"},
		})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Request Parsing ---

// parseIDParam extracts a record ID from URL parameters. Anything that is not
// an integer gets a 400. An integer that no record can carry (zero, negative
// or beyond int64) gets a 404 for resource. Either way it returns 0, false.
func parseIDParam(c *gin.Context, paramName, resource string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			respondNotFound(c, resource)
		} else {
			respondBadRequest(c, "invalid "+paramName)
		}
		return 0, false
	}
	if id < 1 {
		respondNotFound(c, resource)
		return 0, false
	}
	return uint(id), true
}

// parseNonNegativeQuery reads an optional integer query parameter.
func parseNonNegativeQuery(c *gin.Context, name string, fallback int, fields map[string]string) int {
	raw, present := c.GetQuery(name)
	if !present {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = "must be an integer"
		return fallback
	}
	if value < 0 {
		fields[name] = "must be greater than or equal to 0"
		return fallback
	}
	return value
}

// parsePagination reads skipName and "limit". It responds with 422 and
// returns false on bad input.
func parsePagination(c *gin.Context, p Pagination, skipName string) (skip, limit int, ok bool) {
	fields := map[string]string{}
	skip = parseNonNegativeQuery(c, skipName, 0, fields)
	limit = parseNonNegativeQuery(c, "limit", p.DefaultLimit, fields)

	if _, bad := fields["limit"]; !bad && p.MaxLimit > 0 && limit > p.MaxLimit {
		fields["limit"] = "must be less than or equal to " + strconv.Itoa(p.MaxLimit)
	}

	if len(fields) > 0 {
		respondValidationError(c, fields)
		return 0, 0, false
	}
	return skip, limit, true
}

type validatable interface {
	Validate() error
}

// bindAndValidate decodes the JSON object body into req and runs its rules.
// It responds with 422 and returns false on failure.
func bindAndValidate(c *gin.Context, req validatable) bool {
	body, err := c.GetRawData()
	if err != nil {
		respondValidationError(c, map[string]string{"body": "could not read request body"})
		return false
	}

	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0:
		respondValidationError(c, map[string]string{"body": "request body is required"})
		return false
	case trimmed[0] != '{':
		respondValidationError(c, map[string]string{"body": "must be a JSON object"})
		return false
	}

	if err := binding.JSON.BindBody(trimmed, req); err != nil {
		respondValidationError(c, schemas.FromDecodeError(err).Fields())
		return false
	}

	if err := req.Validate(); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(c, verr.Fields())
		} else {
			respondValidationError(c, map[string]string{"body": err.Error()})
		}
		return false
	}
	return true
}
