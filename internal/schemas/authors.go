package schemas

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrlokans/library-api/internal/entities"
)

const maxAuthorNameLength = 100

type AuthorCreate struct {
	Name      string         `json:"name"`
	Bio       *string        `json:"bio"`
	BirthDate *entities.Date `json:"birth_date"`
}

func (r AuthorCreate) Validate() error {
	return newValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(0, maxAuthorNameLength),
		),
	))
}

func (r AuthorCreate) ToEntity() *entities.Author {
	return &entities.Author{
		Name:      r.Name,
		Bio:       r.Bio,
		BirthDate: r.BirthDate,
	}
}

type AuthorResponse struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Bio       *string        `json:"bio"`
	BirthDate *entities.Date `json:"birth_date"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewAuthorResponse(a *entities.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		BirthDate: a.BirthDate,
		CreatedAt: a.CreatedAt,
	}
}

func NewAuthorResponses(authors []entities.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, NewAuthorResponse(&authors[i]))
	}
	return out
}
