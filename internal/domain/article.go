package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Article struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt   string    `gorm:"size:1024;not null" json:"excerpt"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:255;not null" json:"author"`
	Image     *string   `gorm:"size:1024" json:"image"`
	Status    string    `gorm:"size:32;not null;default:'draft';index" json:"status"`
	Genres    []Genre   `gorm:"many2many:article_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Article) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
