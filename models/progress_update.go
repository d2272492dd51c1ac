package models

import (
	"time"

	"github.com/google/uuid"
)

// ProgressUpdate is a daily log entry recorded against a project.
type ProgressUpdate struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_progress_updates_project_id;constraint:OnDelete:CASCADE"`
	Date      time.Time `json:"date" db:"date" gorm:"type:date;not null"`
	Notes     string    `json:"notes" db:"notes" gorm:"type:text"`
	WorkedOn  bool      `json:"worked_on" db:"worked_on" gorm:"type:boolean;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`
}
