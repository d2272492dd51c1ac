package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents any actor in the system: a project owner or a reviewer.
type User struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email          string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email_lower,expression:lower(email)"`
	Name           string    `json:"name" db:"name" gorm:"type:text;not null"`
	PasswordDigest string    `json:"-" db:"password_digest" gorm:"type:text;not null"`
	SlackUserID    *string   `json:"slack_user_id,omitempty" db:"slack_user_id" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null"`
}
