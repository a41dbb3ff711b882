package schemas

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/library-api/internal/entities"
)

const (
	maxBookTitleLength = 200
	maxISBNLength      = 13
)

type BookCreate struct {
	Title       string  `json:"title"`
	AuthorID    *uint   `json:"author_id"`
	Description *string `json:"description"`
	Year        *int    `json:"year"`
	ISBN        *string `json:"isbn"`
}

func (r BookCreate) Validate() error {
	return newValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(0, maxBookTitleLength),
		),
		validation.Field(&r.AuthorID,
			validation.NotNil.Error("author_id is required"),
		),
		validation.Field(&r.ISBN,
			validation.RuneLength(0, maxISBNLength),
		),
	))
}

// ToEntity must only be called after Validate succeeded.
func (r BookCreate) ToEntity() *entities.Book {
	book := &entities.Book{
		Title:       r.Title,
		Description: r.Description,
		Year:        r.Year,
		ISBN:        r.ISBN,
	}
	if r.AuthorID != nil {
		book.AuthorID = *r.AuthorID
	}
	return book
}

// BookUpdate is a partial update. Absent fields are left alone, null clears
// a nullable column, any other value replaces the stored one.
type BookUpdate struct {
	Title       Optional[string] `json:"title"`
	AuthorID    Optional[uint]   `json:"author_id"`
	Description Optional[string] `json:"description"`
	Year        Optional[int]    `json:"year"`
	ISBN        Optional[string] `json:"isbn"`
}

func (u BookUpdate) Validate() error {
	errs := validation.Errors{}
	if u.Title.Set {
		errs["title"] = validation.Validate(u.Title.Value,
			validation.NotNil.Error("title cannot be null"),
			validation.Required.Error("title cannot be blank"),
			validation.RuneLength(0, maxBookTitleLength),
		)
	}
	if u.AuthorID.Set {
		errs["author_id"] = validation.Validate(u.AuthorID.Value,
			validation.NotNil.Error("author_id cannot be null"),
		)
	}
	if u.ISBN.Set {
		errs["isbn"] = validation.Validate(u.ISBN.Value, validation.RuneLength(0, maxISBNLength))
	}
	return newValidationError(errs.Filter())
}

// Changes returns the column values to write, keyed by column name.
func (u BookUpdate) Changes() map[string]any {
	changes := map[string]any{}
	setColumn(changes, "title", u.Title)
	setColumn(changes, "author_id", u.AuthorID)
	setColumn(changes, "description", u.Description)
	setColumn(changes, "year", u.Year)
	setColumn(changes, "isbn", u.ISBN)
	return changes
}

func setColumn[T any](changes map[string]any, column string, field Optional[T]) {
	if !field.Set {
		return
	}
	if field.IsNull() {
		changes[column] = nil
		return
	}
	changes[column] = *field.Value
}

type BookResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	AuthorID    uint      `json:"author_id"`
	Description *string   `json:"description"`
	Year        *int      `json:"year"`
	ISBN        *string   `json:"isbn"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewBookResponse(b *entities.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		AuthorID:    b.AuthorID,
		Description: b.Description,
		Year:        b.Year,
		ISBN:        b.ISBN,
		CreatedAt:   b.CreatedAt,
	}
}

func NewBookResponses(books []entities.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, NewBookResponse(&books[i]))
	}
	return out
}
