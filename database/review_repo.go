package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

// ReviewRepo owns the append-only verdict ledger. Rows are never updated or
// deleted through this interface.
type ReviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ReviewRepo) GetDB() *gorm.DB {
	return r.db
}

// Submit appends a verdict with a server-assigned timestamp. The submitter
// must currently be on the project's review panel; verdicts from anyone else
// are rejected with errs.ErrNotDesignated rather than stored and ignored.
// The project row is locked so the designation check and the insert commit
// as one unit relative to concurrent revocations and gate transitions.
func (r *ReviewRepo) Submit(projectID, reviewerID uuid.UUID, approved bool, body string) (*models.Review, error) {
	review := models.Review{
		ID:         uuid.New(),
		ProjectID:  projectID,
		ReviewerID: reviewerID,
		IsApproved: approved,
		Body:       body,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&models.Project{}, "id = ?", projectID).Error; err != nil {
			return err
		}

		var designated int64
		if err := tx.Model(&models.DesignatedReviewer{}).
			Where("project_id = ? AND reviewer_id = ?", projectID, reviewerID).
			Count(&designated).Error; err != nil {
			return err
		}
		if designated == 0 {
			return errs.NewNotDesignatedError(reviewerID.String())
		}

		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByProject returns every verdict on record for the project, any
// reviewer, in submission order.
func (r *ReviewRepo) FindByProject(projectID uuid.UUID) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.Preload("Reviewer").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&reviews).Error
	return reviews, err
}
