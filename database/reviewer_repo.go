package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

// ReviewerRepo owns the review panel: which users are designated reviewers
// of which projects.
type ReviewerRepo struct {
	db *gorm.DB
}

func NewReviewerRepo(db *gorm.DB) *ReviewerRepo {
	return &ReviewerRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ReviewerRepo) GetDB() *gorm.DB {
	return r.db
}

// Designate adds a user to a project's review panel. The project row is
// locked so a concurrent gate transition cannot evaluate against a
// half-applied panel. A second designation of the same pair fails with
// errs.ErrDuplicateReviewer; the unique index on (project_id, reviewer_id)
// is the storage-level backstop.
func (r *ReviewerRepo) Designate(projectID, reviewerID uuid.UUID) (*models.DesignatedReviewer, error) {
	designation := models.DesignatedReviewer{
		ID:         uuid.New(),
		ProjectID:  projectID,
		ReviewerID: reviewerID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&models.Project{}, "id = ?", projectID).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.DesignatedReviewer{}).
			Where("project_id = ? AND reviewer_id = ?", projectID, reviewerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errs.NewDuplicateReviewerError(reviewerID.String())
		}

		return tx.Create(&designation).Error
	})
	if err != nil {
		return nil, err
	}
	return &designation, nil
}

// Revoke removes a user from a project's review panel. The ledger is left
// untouched: the reviewer's past verdicts survive but stop counting toward
// the gate. Returns a not-found error if the pair was never designated.
func (r *ReviewerRepo) Revoke(projectID, reviewerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&models.Project{}, "id = ?", projectID).Error; err != nil {
			return err
		}

		result := tx.Where("project_id = ? AND reviewer_id = ?", projectID, reviewerID).
			Delete(&models.DesignatedReviewer{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("designated reviewer")
		}
		return nil
	})
}

// FindByProject returns the current panel in designation order.
func (r *ReviewerRepo) FindByProject(projectID uuid.UUID) ([]*models.DesignatedReviewer, error) {
	var panel []*models.DesignatedReviewer
	err := r.db.Preload("Reviewer").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&panel).Error
	return panel, err
}
