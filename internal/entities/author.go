package entities

import "time"

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	BirthDate *Date     `json:"birth_date"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Books []Book `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
