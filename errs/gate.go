package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Approval-gate domain errors
var (
	ErrDuplicateReviewer = errors.New("reviewer already designated")
	ErrNotDesignated     = errors.New("reviewer not designated")
	ErrGateNotSatisfied  = errors.New("approval gate not satisfied")
)

// NewDuplicateReviewerError reports an attempt to designate the same user
// twice on one project.
func NewDuplicateReviewerError(reviewerID string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDuplicateReviewer,
		Details:    fmt.Sprintf("user %s is already on this project's review panel", reviewerID),
		Field:      "reviewer_id",
	}
}

// NewNotDesignatedError reports a verdict submitted by a user who is not
// currently on the project's review panel.
func NewNotDesignatedError(reviewerID string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrNotDesignated,
		Details:    fmt.Sprintf("user %s is not a designated reviewer of this project", reviewerID),
		Field:      "reviewer_id",
	}
}

// NewGateNotSatisfiedError reports a transition attempt on a project whose
// gate does not hold. Classification and count ride along so the caller can
// render a precise status message.
func NewGateNotSatisfiedError(classification string, approvingCount int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrGateNotSatisfied,
		Details:    fmt.Sprintf("classification %s with %d approving reviewer(s)", classification, approvingCount),
		Field:      "status",
	}
}

func IsDuplicateReviewer(err error) bool {
	return errors.Is(err, ErrDuplicateReviewer)
}

func IsNotDesignated(err error) bool {
	return errors.Is(err, ErrNotDesignated)
}

func IsGateNotSatisfied(err error) bool {
	return errors.Is(err, ErrGateNotSatisfied)
}
