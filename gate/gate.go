// Package gate computes approval-gate status for a project from a snapshot
// of its review panel and its verdict ledger. It holds no state and performs
// no I/O; callers are responsible for reading a consistent snapshot.
package gate

import (
	"github.com/google/uuid"

	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

// ApprovalThreshold is the number of distinct designated reviewers that must
// have an approving verdict on record before a project may enter execution.
const ApprovalThreshold = 2

// Classification describes how far a project is from clearing the gate.
type Classification string

const (
	NoApprovalsYet              Classification = "no_approvals_yet"
	AwaitingAdditionalApprovals Classification = "awaiting_additional_approvals"
	Approved                    Classification = "approved"
)

// Evaluation is the result of running the gate over one project's snapshot.
type Evaluation struct {
	ApprovingCount int            `json:"approving_count"`
	Classification Classification `json:"classification"`
}

// Satisfied reports whether the project may advance to execution.
func (e Evaluation) Satisfied() bool {
	return e.Classification == Approved
}

// Evaluate counts the distinct designated reviewers with at least one
// approving verdict. The count is over reviewers, not verdicts: any number
// of approvals from one reviewer contributes 1, and verdicts from users not
// currently on the panel are ignored. A reviewer counts as approving if any
// verdict they ever submitted approved — a later denial does not withdraw it.
func Evaluate(panel []uuid.UUID, ledger []models.Review) Evaluation {
	designated := make(map[uuid.UUID]bool, len(panel))
	for _, id := range panel {
		designated[id] = true
	}

	approving := make(map[uuid.UUID]bool)
	for _, review := range ledger {
		if review.IsApproved && designated[review.ReviewerID] {
			approving[review.ReviewerID] = true
		}
	}

	return Evaluation{
		ApprovingCount: len(approving),
		Classification: classify(len(approving)),
	}
}

func classify(approvingCount int) Classification {
	switch {
	case approvingCount >= ApprovalThreshold:
		return Approved
	case approvingCount > 0:
		return AwaitingAdditionalApprovals
	default:
		return NoApprovalsYet
	}
}
