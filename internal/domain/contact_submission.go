package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission is the canonical record of one inbound contact message.
// Postgres is the source of truth; GoogleSheetsSynced tracks whether the
// best-effort mirror copy reached the configured spreadsheet. The flag only
// ever moves false -> true.
type ContactSubmission struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Email              string    `gorm:"size:255;not null;index" json:"email"`
	Phone              *string   `gorm:"size:64" json:"phone"`
	Message            string    `gorm:"type:text;not null" json:"message"`
	SubmittedAt        time.Time `gorm:"not null;index" json:"submitted_at"`
	GoogleSheetsSynced bool      `gorm:"not null;default:false" json:"google_sheets_synced"`
}

func (s *ContactSubmission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now().UTC()
	}
	return nil
}
