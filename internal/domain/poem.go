package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Poem has no draft state: a saved poem is live immediately. Preview holds the
// opening lines shown on the listing page.
type Poem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Preview   string    `gorm:"size:1024;not null" json:"preview"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     *string   `gorm:"size:1024" json:"image"`
	Genres    []Genre   `gorm:"many2many:poem_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Poem) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
