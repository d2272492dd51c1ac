package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

// newMockDB creates a sqlmock-backed gorm instance with automatic cleanup
// and expectation checking.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		sqlDB.Close()
	})

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %v", err)
	}
	return gdb, mock
}

// projectColumns is the column list for project query results.
var projectColumns = []string{
	"id", "user_id", "title", "description", "impact", "plan_execution",
	"duration_days", "visibility", "status", "created_at", "updated_at",
}

// reviewColumns is the column list for review query results.
var reviewColumns = []string{
	"id", "project_id", "reviewer_id", "is_approved", "body", "created_at",
}

// projectRow builds a single-row result for a project in the given status.
func projectRow(projectID, ownerID uuid.UUID, status models.ProjectStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(projectColumns).AddRow(
		projectID.String(), ownerID.String(), "learn go", "", "", "",
		30, "private", string(status), now, now,
	)
}

// panelRows builds a reviewer_id result set for the designated reviewer pluck.
func panelRows(reviewerIDs ...uuid.UUID) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"reviewer_id"})
	for _, id := range reviewerIDs {
		rows.AddRow(id.String())
	}
	return rows
}

// reviewRows builds a ledger result set of one verdict per (reviewer, approved) pair.
func reviewRows(projectID uuid.UUID, verdicts map[uuid.UUID]bool) *sqlmock.Rows {
	rows := sqlmock.NewRows(reviewColumns)
	for reviewerID, approved := range verdicts {
		rows.AddRow(uuid.New().String(), projectID.String(), reviewerID.String(), approved, "", time.Now())
	}
	return rows
}

// expectLockProject sets up the FOR UPDATE read that starts every
// panel/ledger/transition transaction.
func expectLockProject(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .* FOR UPDATE`).WillReturnRows(rows)
}

// expectGateSnapshot sets up the panel and ledger reads done by evaluateGate.
func expectGateSnapshot(mock sqlmock.Sqlmock, panel, ledger *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT "reviewer_id" FROM "designated_reviewers" WHERE project_id = \$1`).WillReturnRows(panel)
	mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE project_id = \$1`).WillReturnRows(ledger)
}
