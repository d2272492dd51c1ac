package models

import (
	"time"

	"github.com/google/uuid"
)

// DesignatedReviewer binds a User to a Project's review panel. A user may be
// designated at most once per project; the composite unique index is the
// storage-level backstop for that rule.
type DesignatedReviewer struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID  uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_designated_reviewers_project_id;uniqueIndex:idx_designated_reviewers_unique;constraint:OnDelete:CASCADE"`
	ReviewerID uuid.UUID `json:"reviewer_id" db:"reviewer_id" gorm:"type:uuid;not null;uniqueIndex:idx_designated_reviewers_unique"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`

	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID;references:ID"`
}
