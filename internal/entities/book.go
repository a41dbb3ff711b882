package entities

import "time"

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null;index" json:"title"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Description *string   `gorm:"type:text" json:"description"`
	Year        *int      `json:"year"`
	ISBN        *string   `gorm:"column:isbn;size:13;uniqueIndex" json:"isbn"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
