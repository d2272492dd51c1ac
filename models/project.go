package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	// StatusProposal is the initial state, set at creation.
	StatusProposal ProjectStatus = "proposal"
	// StatusExecution is reached only through the approval gate.
	StatusExecution ProjectStatus = "execution"
	// StatusComplete exists for finished projects; the gate core never
	// writes it and never transitions out of it.
	StatusComplete ProjectStatus = "complete"
)

// Project represents a personal goal tracked through the approval gate.
type Project struct {
	ID            uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index:idx_projects_user_id"`
	Title         string        `json:"title" db:"title" gorm:"type:text;not null"`
	Description   string        `json:"description" db:"description" gorm:"type:text;not null"`
	Impact        string        `json:"impact" db:"impact" gorm:"type:text"`
	PlanExecution string        `json:"plan_execution" db:"plan_execution" gorm:"type:text"`
	DurationDays  int           `json:"duration_days" db:"duration_days" gorm:"type:integer;not null;default:0"`
	Visibility    string        `json:"visibility" db:"visibility" gorm:"type:text;not null;default:private"`
	Status        ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;default:proposal"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at" gorm:"type:timestamptz;not null"`

	Owner               *User                `json:"owner,omitempty" gorm:"foreignKey:UserID;references:ID"`
	DesignatedReviewers []DesignatedReviewer `json:"designated_reviewers,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Reviews             []Review             `json:"reviews,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
