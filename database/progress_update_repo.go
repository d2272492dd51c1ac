package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

type ProgressUpdateRepo struct {
	db *gorm.DB
}

func NewProgressUpdateRepo(db *gorm.DB) *ProgressUpdateRepo {
	return &ProgressUpdateRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProgressUpdateRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns a project's progress updates, newest first
func (r *ProgressUpdateRepo) FindByProject(projectID uuid.UUID) ([]*models.ProgressUpdate, error) {
	var updates []*models.ProgressUpdate
	err := r.db.
		Where("project_id = ?", projectID).
		Order("date DESC").
		Find(&updates).Error
	return updates, err
}

// Add inserts a new progress update into the database
func (r *ProgressUpdateRepo) Add(update *models.ProgressUpdate) error {
	if update.ID == uuid.Nil {
		update.ID = uuid.New()
	}
	return r.db.Create(update).Error
}
