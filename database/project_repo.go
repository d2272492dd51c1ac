package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/gate"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAllForUser returns the projects a user owns plus the projects the user
// is designated to review.
func (r *ProjectRepo) FindAllForUser(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Where("user_id = ?", userID).
		Or("id IN (?)", r.db.Model(&models.DesignatedReviewer{}).Select("project_id").Where("reviewer_id = ?", userID)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID with its review panel preloaded
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("DesignatedReviewers.Reviewer").First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = models.StatusProposal
	}
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// GateStatus evaluates the approval gate against the project's current panel
// and verdict ledger.
func (r *ProjectRepo) GateStatus(projectID uuid.UUID) (gate.Evaluation, error) {
	var evaluation gate.Evaluation
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Project{}, "id = ?", projectID).Error; err != nil {
			return err
		}
		var err error
		evaluation, err = evaluateGate(tx, projectID)
		return err
	})
	return evaluation, err
}

// AdvanceToExecution attempts the guarded proposal -> execution transition.
//
// The project row is locked for the duration of the transaction, so the gate
// is evaluated against a snapshot no concurrent designate/revoke/submit can
// move under us, and two concurrent attempts serialize: the first performs
// the write, the second observes execution and takes the no-op path. The
// status write itself is conditional on status still being proposal, so the
// transition can never fire twice or overwrite a later lifecycle state.
//
// Returns the project, the evaluation the decision was based on, whether
// this call performed the write (false on the idempotent repeat path), and
// an error carrying errs.ErrGateNotSatisfied when the gate does not hold.
func (r *ProjectRepo) AdvanceToExecution(projectID uuid.UUID) (*models.Project, gate.Evaluation, bool, error) {
	var project models.Project
	var evaluation gate.Evaluation
	var advanced bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&project, "id = ?", projectID).Error; err != nil {
			return err
		}

		var err error
		evaluation, err = evaluateGate(tx, projectID)
		if err != nil {
			return err
		}

		// Idempotent: anything past proposal is left untouched.
		if project.Status != models.StatusProposal {
			return nil
		}

		if !evaluation.Satisfied() {
			return errs.NewGateNotSatisfiedError(string(evaluation.Classification), evaluation.ApprovingCount)
		}

		result := tx.Model(&models.Project{}).
			Where("id = ? AND status = ?", projectID, models.StatusProposal).
			Update("status", models.StatusExecution)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 1 {
			project.Status = models.StatusExecution
			advanced = true
		}
		return nil
	})
	if err != nil {
		return nil, evaluation, false, err
	}
	return &project, evaluation, advanced, nil
}

// evaluateGate reads the panel and ledger inside the caller's transaction
// and runs the pure evaluator over them.
func evaluateGate(tx *gorm.DB, projectID uuid.UUID) (gate.Evaluation, error) {
	var panel []uuid.UUID
	if err := tx.Model(&models.DesignatedReviewer{}).
		Where("project_id = ?", projectID).
		Order("created_at").
		Pluck("reviewer_id", &panel).Error; err != nil {
		return gate.Evaluation{}, err
	}

	var ledger []models.Review
	if err := tx.
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&ledger).Error; err != nil {
		return gate.Evaluation{}, err
	}

	return gate.Evaluate(panel, ledger), nil
}
