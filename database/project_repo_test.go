package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/gate"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

func TestAdvanceToExecution_GateSatisfied(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()
	reviewerA := uuid.New()
	reviewerB := uuid.New()

	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	expectGateSnapshot(mock,
		panelRows(reviewerA, reviewerB),
		reviewRows(projectID, map[uuid.UUID]bool{reviewerA: true, reviewerB: true}),
	)
	mock.ExpectExec(`UPDATE "projects" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	project, evaluation, advanced, err := repo.AdvanceToExecution(projectID)
	if err != nil {
		t.Fatalf("AdvanceToExecution: %v", err)
	}
	if !advanced {
		t.Error("expected transition to be performed")
	}
	if project.Status != models.StatusExecution {
		t.Errorf("status = %q, want %q", project.Status, models.StatusExecution)
	}
	if evaluation.ApprovingCount != 2 || evaluation.Classification != gate.Approved {
		t.Errorf("evaluation = %+v, want 2 approving / approved", evaluation)
	}
}

func TestAdvanceToExecution_GateNotSatisfied(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()
	reviewerA := uuid.New()
	reviewerB := uuid.New()

	// One approval and one denial: classification stays below the threshold
	// and nothing may be written.
	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusProposal))
	expectGateSnapshot(mock,
		panelRows(reviewerA, reviewerB),
		reviewRows(projectID, map[uuid.UUID]bool{reviewerA: true, reviewerB: false}),
	)
	mock.ExpectRollback()

	_, evaluation, advanced, err := repo.AdvanceToExecution(projectID)
	if !errs.IsGateNotSatisfied(err) {
		t.Fatalf("err = %v, want gate-not-satisfied", err)
	}
	if advanced {
		t.Error("no transition may be performed when the gate does not hold")
	}
	if evaluation.ApprovingCount != 1 || evaluation.Classification != gate.AwaitingAdditionalApprovals {
		t.Errorf("evaluation = %+v, want 1 approving / awaiting", evaluation)
	}
}

func TestAdvanceToExecution_IdempotentOnceInExecution(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()

	// Already in execution: no UPDATE is expected, the call reports the
	// current state without error.
	mock.ExpectBegin()
	expectLockProject(mock, projectRow(projectID, ownerID, models.StatusExecution))
	expectGateSnapshot(mock, panelRows(), reviewRows(projectID, nil))
	mock.ExpectCommit()

	project, _, advanced, err := repo.AdvanceToExecution(projectID)
	if err != nil {
		t.Fatalf("AdvanceToExecution on executing project: %v", err)
	}
	if advanced {
		t.Error("repeat attempt must not report a fresh transition")
	}
	if project.Status != models.StatusExecution {
		t.Errorf("status = %q, want %q", project.Status, models.StatusExecution)
	}
}

func TestAdvanceToExecution_ProjectNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	// Empty result set: gorm reports record-not-found and the transaction
	// rolls back with nothing written.
	mock.ExpectBegin()
	expectLockProject(mock, sqlmock.NewRows(projectColumns))
	mock.ExpectRollback()

	_, _, _, err := repo.AdvanceToExecution(uuid.New())
	if err == nil {
		t.Fatal("expected an error for an unknown project")
	}
}

func TestGateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepo(db)

	projectID := uuid.New()
	ownerID := uuid.New()
	reviewerA := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1`).
		WillReturnRows(projectRow(projectID, ownerID, models.StatusProposal))
	expectGateSnapshot(mock,
		panelRows(reviewerA),
		reviewRows(projectID, map[uuid.UUID]bool{reviewerA: true}),
	)
	mock.ExpectCommit()

	evaluation, err := repo.GateStatus(projectID)
	if err != nil {
		t.Fatalf("GateStatus: %v", err)
	}
	if evaluation.ApprovingCount != 1 || evaluation.Classification != gate.AwaitingAdditionalApprovals {
		t.Errorf("evaluation = %+v, want 1 approving / awaiting", evaluation)
	}
}
