package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/personal-goal-tracker-backend/database"
	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
	"github.com/rpupo63/personal-goal-tracker-backend/services"
)

type reviewHandler struct {
	responder   Responder
	logger      zerolog.Logger
	reviewRepo  *database.ReviewRepo
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
	notifier    services.Notifier
}

func newReviewHandler(reviewRepo *database.ReviewRepo, projectRepo *database.ProjectRepo, userRepo *database.UserRepo, notifier services.Notifier) reviewHandler {
	logger := log.With().Str("handlerName", "reviewHandler").Logger()

	return reviewHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		reviewRepo:  reviewRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// ReviewCollection represents a project's verdict ledger
type ReviewCollection struct {
	Reviews []*models.Review `json:"reviews"`
	Total   int              `json:"total,omitempty"`
}

type submitReviewRequest struct {
	Approved bool   `json:"approved"`
	Body     string `json:"body"`
}

// listReviews returns every verdict on record, any reviewer, in submission order.
func (h reviewHandler) listReviews() http.HandlerFunc {
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

		reviews, err := h.reviewRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find reviews of", "project", err))
			return
		}

		h.responder.WriteJSON(w, ReviewCollection{Reviews: reviews, Total: len(reviews)})
	}
}

// submitReview appends a verdict from the authenticated user. A caller who
// is not currently on the project's panel gets 403 NotDesignated.
func (h reviewHandler) submitReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewerID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authenticated user"))
			return
		}

		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req submitReviewRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode review request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		review, err := h.reviewRepo.Submit(projectID, reviewerID, req.Approved, req.Body)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("submit review on", "project", err))
			return
		}

		go h.notifyVerdict(projectID, reviewerID, review)

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, review)
	}
}

// notifyVerdict tells the project owner a verdict landed. Runs off the
// request path; failures are logged by the notifier.
func (h reviewHandler) notifyVerdict(projectID, reviewerID uuid.UUID, review *models.Review) {
	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		h.logger.Error().Err(err).Str("projectID", projectID.String()).Msg("Failed to load project for verdict notification")
		return
	}
	owner, err := h.userRepo.FindByID(project.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("projectID", projectID.String()).Msg("Failed to load owner for verdict notification")
		return
	}
	reviewer, err := h.userRepo.FindByID(reviewerID)
	if err != nil {
		h.logger.Error().Err(err).Str("reviewerID", reviewerID.String()).Msg("Failed to load reviewer for verdict notification")
		return
	}
	h.notifier.VerdictSubmitted(project, owner, reviewer, review)
}
