package gate

import (
	"testing"

	"github.com/google/uuid"

	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

var (
	reviewerA = uuid.New()
	reviewerB = uuid.New()
	reviewerC = uuid.New()
	outsider  = uuid.New()
)

func verdict(reviewer uuid.UUID, approved bool) models.Review {
	return models.Review{ID: uuid.New(), ReviewerID: reviewer, IsApproved: approved}
}

func TestEvaluate(t *testing.T) {
	fullPanel := []uuid.UUID{reviewerA, reviewerB, reviewerC}

	for _, tc := range []struct {
		name      string
		panel     []uuid.UUID
		ledger    []models.Review
		wantCount int
		wantClass Classification
	}{
		{
			name:      "no reviews",
			panel:     fullPanel,
			ledger:    nil,
			wantCount: 0,
			wantClass: NoApprovalsYet,
		},
		{
			name:      "single approval awaits more",
			panel:     fullPanel,
			ledger:    []models.Review{verdict(reviewerA, true)},
			wantCount: 1,
			wantClass: AwaitingAdditionalApprovals,
		},
		{
			name:  "two distinct approvals satisfy the gate despite a denial",
			panel: fullPanel,
			ledger: []models.Review{
				verdict(reviewerA, true),
				verdict(reviewerB, false),
				verdict(reviewerC, true),
			},
			wantCount: 2,
			wantClass: Approved,
		},
		{
			name:  "duplicate approvals from one reviewer count once",
			panel: fullPanel,
			ledger: []models.Review{
				verdict(reviewerA, true),
				verdict(reviewerA, true),
			},
			wantCount: 1,
			wantClass: AwaitingAdditionalApprovals,
		},
		{
			name:  "denial after approval does not withdraw the approval",
			panel: fullPanel,
			ledger: []models.Review{
				verdict(reviewerA, true),
				verdict(reviewerA, false),
				verdict(reviewerB, true),
			},
			wantCount: 2,
			wantClass: Approved,
		},
		{
			name:  "non-designated verdicts are ignored",
			panel: []uuid.UUID{reviewerA, reviewerB},
			ledger: []models.Review{
				verdict(reviewerA, true),
				verdict(outsider, true),
			},
			wantCount: 1,
			wantClass: AwaitingAdditionalApprovals,
		},
		{
			name:      "only denials",
			panel:     fullPanel,
			ledger:    []models.Review{verdict(reviewerA, false), verdict(reviewerB, false)},
			wantCount: 0,
			wantClass: NoApprovalsYet,
		},
		{
			name:      "empty panel ignores everything",
			panel:     nil,
			ledger:    []models.Review{verdict(reviewerA, true), verdict(reviewerB, true)},
			wantCount: 0,
			wantClass: NoApprovalsYet,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.panel, tc.ledger)
			if got.ApprovingCount != tc.wantCount {
				t.Errorf("ApprovingCount = %d, want %d", got.ApprovingCount, tc.wantCount)
			}
			if got.Classification != tc.wantClass {
				t.Errorf("Classification = %q, want %q", got.Classification, tc.wantClass)
			}
			if got.Satisfied() != (tc.wantClass == Approved) {
				t.Errorf("Satisfied() = %v for classification %q", got.Satisfied(), got.Classification)
			}
		})
	}
}

// TestEvaluateMonotonicCount checks that adding approvals from new distinct
// reviewers never decreases the count, and that repeat verdicts from already
// counted reviewers never change it.
func TestEvaluateMonotonicCount(t *testing.T) {
	panel := []uuid.UUID{reviewerA, reviewerB, reviewerC}
	var ledger []models.Review
	prev := 0

	for _, r := range panel {
		ledger = append(ledger, verdict(r, true))
		got := Evaluate(panel, ledger).ApprovingCount
		if got < prev {
			t.Fatalf("count decreased from %d to %d after new approval", prev, got)
		}
		prev = got

		// Extra verdicts from the same reviewer, approving or not, change nothing.
		ledger = append(ledger, verdict(r, true), verdict(r, false))
		if again := Evaluate(panel, ledger).ApprovingCount; again != got {
			t.Fatalf("count changed from %d to %d on repeat verdicts", got, again)
		}
	}

	if prev != 3 {
		t.Fatalf("final count = %d, want 3", prev)
	}
}

// TestEvaluateRevocationEffect checks that dropping an approving reviewer
// from the panel decreases the count by exactly one.
func TestEvaluateRevocationEffect(t *testing.T) {
	panel := []uuid.UUID{reviewerA, reviewerB}
	ledger := []models.Review{verdict(reviewerA, true), verdict(reviewerB, true)}

	before := Evaluate(panel, ledger)
	if before.ApprovingCount != 2 || !before.Satisfied() {
		t.Fatalf("setup: got %+v, want satisfied count 2", before)
	}

	after := Evaluate([]uuid.UUID{reviewerB}, ledger)
	if after.ApprovingCount != before.ApprovingCount-1 {
		t.Errorf("count after revocation = %d, want %d", after.ApprovingCount, before.ApprovingCount-1)
	}
	if after.Classification != AwaitingAdditionalApprovals {
		t.Errorf("classification after revocation = %q, want %q", after.Classification, AwaitingAdditionalApprovals)
	}
}
