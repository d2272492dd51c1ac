package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/personal-goal-tracker-backend/database"
	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

type reviewerHandler struct {
	responder    Responder
	logger       zerolog.Logger
	reviewerRepo *database.ReviewerRepo
	projectRepo  *database.ProjectRepo
	userRepo     *database.UserRepo
}

func newReviewerHandler(reviewerRepo *database.ReviewerRepo, projectRepo *database.ProjectRepo, userRepo *database.UserRepo) reviewerHandler {
	logger := log.With().Str("handlerName", "reviewerHandler").Logger()

	return reviewerHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		reviewerRepo: reviewerRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
	}
}

// ReviewerPanel represents a project's designated reviewers
type ReviewerPanel struct {
	Reviewers []*models.DesignatedReviewer `json:"reviewers"`
	Total     int                          `json:"total,omitempty"`
}

type designateRequest struct {
	ReviewerID uuid.UUID `json:"reviewer_id"`
}

// listReviewers returns the project's panel in designation order.
func (h reviewerHandler) listReviewers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		panel, err := h.reviewerRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find reviewers of", "project", err))
			return
		}

		h.responder.WriteJSON(w, ReviewerPanel{Reviewers: panel, Total: len(panel)})
	}
}

// designateReviewer adds a user to the project's panel. Owner-only; a
// repeated pair fails with 409 DuplicateReviewer.
func (h reviewerHandler) designateReviewer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authenticated user"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if project.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the project owner may designate reviewers"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req designateRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode designation request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.ReviewerID == uuid.Nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "reviewer_id", "reviewer_id is required"))
			return
		}

		if _, err := h.userRepo.FindByID(req.ReviewerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "reviewer", err))
			return
		}

		if _, err := h.reviewerRepo.Designate(projectID, req.ReviewerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("designate reviewer on", "project", err))
			return
		}

		panel, err := h.reviewerRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find reviewers of", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, ReviewerPanel{Reviewers: panel, Total: len(panel)})
	}
}

// revokeReviewer removes a user from the project's panel. The reviewer's
// past verdicts stay in the ledger but stop counting toward the gate.
func (h reviewerHandler) revokeReviewer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authenticated user"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reviewerIDStr := chi.URLParam(r, "reviewerID")
		reviewerID, err := uuid.Parse(reviewerIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewerID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if project.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the project owner may revoke reviewers"))
			return
		}

		if err := h.reviewerRepo.Revoke(projectID, reviewerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("revoke reviewer on", "project", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
