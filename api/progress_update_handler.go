package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/personal-goal-tracker-backend/database"
	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

type progressUpdateHandler struct {
	responder          Responder
	logger             zerolog.Logger
	progressUpdateRepo *database.ProgressUpdateRepo
	projectRepo        *database.ProjectRepo
}

func newProgressUpdateHandler(progressUpdateRepo *database.ProgressUpdateRepo, projectRepo *database.ProjectRepo) progressUpdateHandler {
	logger := log.With().Str("handlerName", "progressUpdateHandler").Logger()

	return progressUpdateHandler{
		responder:          NewResponder(logger),
		logger:             logger,
		progressUpdateRepo: progressUpdateRepo,
		projectRepo:        projectRepo,
	}
}

// ProgressUpdateCollection represents a project's progress log
type ProgressUpdateCollection struct {
	ProgressUpdates []*models.ProgressUpdate `json:"progress_updates"`
	Total           int                      `json:"total,omitempty"`
}

type createProgressUpdateRequest struct {
	Date     string `json:"date"`
	Notes    string `json:"notes"`
	WorkedOn bool   `json:"worked_on"`
}

// listProgressUpdates returns a project's progress log, newest first.
func (h progressUpdateHandler) listProgressUpdates() http.HandlerFunc {
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

		updates, err := h.progressUpdateRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find progress updates of", "project", err))
			return
		}

		h.responder.WriteJSON(w, ProgressUpdateCollection{ProgressUpdates: updates, Total: len(updates)})
	}
}

// createProgressUpdate appends a log entry to the project.
func (h progressUpdateHandler) createProgressUpdate() http.HandlerFunc {
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

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var req createProgressUpdateRequest
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode progress update request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		date := time.Now()
		if req.Date != "" {
			date, err = time.Parse("2006-01-02", req.Date)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "date", "date must be YYYY-MM-DD"))
				return
			}
		}

		update := models.ProgressUpdate{
			ProjectID: projectID,
			Date:      date,
			Notes:     req.Notes,
			WorkedOn:  req.WorkedOn,
		}

		if err := h.progressUpdateRepo.Add(&update); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create progress update on", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, update)
	}
}
