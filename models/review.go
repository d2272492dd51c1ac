package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a single verdict submitted by a reviewer against a project. The
// ledger is append-only: a reviewer may submit any number of verdicts over
// time and none of them are ever overwritten or deleted.
type Review struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID  uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_reviews_project_id;constraint:OnDelete:CASCADE"`
	ReviewerID uuid.UUID `json:"reviewer_id" db:"reviewer_id" gorm:"type:uuid;not null;index:idx_reviews_reviewer_id"`
	IsApproved bool      `json:"is_approved" db:"is_approved" gorm:"type:boolean;not null"`
	Body       string    `json:"body" db:"body" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`

	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID;references:ID"`
}
