package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

func TestSubmit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()
	reviewerID := uuid.New()

	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "designated_reviewers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`INSERT INTO "reviews"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	review, err := repo.Submit(projectID, reviewerID, true, "looks solid")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if review.ID == uuid.Nil {
		t.Error("review ID must be assigned")
	}
	if !review.IsApproved || review.Body != "looks solid" {
		t.Errorf("review = %+v, want approving verdict with body", review)
	}
	if review.ReviewerID != reviewerID || review.ProjectID != projectID {
		t.Errorf("review = %+v, want pair (%s, %s)", review, projectID, reviewerID)
	}
}

func TestSubmit_NotDesignated(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()

	// The submitter is not on the panel: the verdict is rejected at the
	// boundary rather than stored and ignored.
	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "designated_reviewers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := repo.Submit(projectID, uuid.New(), true, "")
	if !errs.IsNotDesignated(err) {
		t.Fatalf("err = %v, want not-designated", err)
	}
}

func TestSubmit_UnknownProject(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	mock.ExpectBegin()
	expectLockProject(mock, sqlmock.NewRows(projectColumns))
	mock.ExpectRollback()

	_, err := repo.Submit(uuid.New(), uuid.New(), true, "")
	if err == nil {
		t.Fatal("expected an error for an unknown project")
	}
}

func TestFindByProjectOrdersBySubmission(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	projectID := uuid.New()
	reviewerID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE project_id = \$1`).
		WillReturnRows(reviewRows(projectID, map[uuid.UUID]bool{reviewerID: true}))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_digest", "slack_user_id", "created_at"}))

	reviews, err := repo.FindByProject(projectID)
	if err != nil {
		t.Fatalf("FindByProject: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(reviews))
	}
}
