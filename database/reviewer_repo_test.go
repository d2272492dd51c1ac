package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

func TestDesignate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewerRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()
	reviewerID := uuid.New()

	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "designated_reviewers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "designated_reviewers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	designation, err := repo.Designate(projectID, reviewerID)
	if err != nil {
		t.Fatalf("Designate: %v", err)
	}
	if designation.ProjectID != projectID || designation.ReviewerID != reviewerID {
		t.Errorf("designation = %+v, want pair (%s, %s)", designation, projectID, reviewerID)
	}
	if designation.ID == uuid.Nil {
		t.Error("designation ID must be assigned")
	}
}

func TestDesignate_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewerRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()

	// The pair already exists: the second designation fails and no row is
	// inserted.
	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "designated_reviewers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.Designate(projectID, uuid.New())
	if !errs.IsDuplicateReviewer(err) {
		t.Fatalf("err = %v, want duplicate-reviewer", err)
	}
}

func TestRevoke(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewerRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	mock.ExpectExec(`DELETE FROM "designated_reviewers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Revoke(projectID, uuid.New()); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
}

func TestRevoke_NotDesignated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewerRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	mock.ExpectExec(`DELETE FROM "designated_reviewers"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Revoke(projectID, uuid.New())
	if !errs.IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
}
