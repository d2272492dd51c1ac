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
	"github.com/rpupo63/personal-goal-tracker-backend/services"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	userRepo    *database.UserRepo
	notifier    services.Notifier
}

func newProjectHandler(projectRepo *database.ProjectRepo, userRepo *database.UserRepo, notifier services.Notifier) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total,omitempty"`
}

// StatusResponse is the outcome of a transition attempt
type StatusResponse struct {
	Status         models.ProjectStatus `json:"status"`
	ApprovingCount int                  `json:"approving_count"`
	Classification string               `json:"classification"`
}

// getAllProjects retrieves the projects the caller owns or reviews
// @Summary Get all projects
// @Description Retrieves the projects the authenticated user owns or is designated to review
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 500 {object} errs.ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authenticated user"))
			return
		}

		projects, err := h.projectRepo.FindAllForUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		response := ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		}

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a specific project by ID with its review panel
// @Summary Get project
// @Description Retrieves detailed information about a specific project by ID
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} errs.ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} errs.ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project owned by the caller
// @Summary Create project
// @Description Creates a new project in proposal state owned by the authenticated user
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} errs.ErrorResponse "Bad Request - Invalid project data"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authenticated user"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var project models.Project
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if project.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("title is required"))
			return
		}

		// Owner and lifecycle state are never client-supplied
		project.ID = uuid.Nil
		project.UserID = userID
		project.Status = models.StatusProposal

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject updates a project's descriptive fields
// @Summary Update project
// @Description Updates a project's descriptive fields; owner and status are immutable here
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 403 {object} errs.ErrorResponse "Forbidden - Not the project owner"
// @Failure 404 {object} errs.ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
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

		existingProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if existingProject.UserID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the project owner may update the project"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var project models.Project
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&project); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		// Descriptive fields only: identity, ownership and lifecycle state
		// stay whatever they already are. Status moves through /status.
		project.ID = projectID
		project.UserID = existingProject.UserID
		project.Status = existingProject.Status
		project.CreatedAt = existingProject.CreatedAt
		project.DesignatedReviewers = nil
		project.Reviews = nil

		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project along with its panel, reviews and progress updates
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 403 {object} errs.ErrorResponse "Forbidden - Not the project owner"
// @Failure 404 {object} errs.ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
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
			h.responder.WriteError(w, errs.NewForbiddenError("only the project owner may delete the project"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// getGateStatus evaluates the approval gate for a project
// @Summary Get gate status
// @Description Returns the approving reviewer count and gate classification
// @Tags Gate
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} gate.Evaluation "Gate evaluation"
// @Failure 404 {object} errs.ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID}/gate [get]
func (h projectHandler) getGateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		evaluation, err := h.projectRepo.GateStatus(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("evaluate gate for", "project", err))
			return
		}

		h.responder.WriteJSON(w, evaluation)
	}
}

// advanceStatus attempts the guarded proposal -> execution transition
// @Summary Advance project status
// @Description Moves the project to execution if two distinct designated reviewers have approved; idempotent once in execution
// @Tags Gate
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} StatusResponse "Current status after the attempt"
// @Failure 404 {object} errs.ErrorResponse "Not Found - Project not found"
// @Failure 409 {object} errs.ErrorResponse "Conflict - GateNotSatisfied"
// @Router /projects/{projectID}/status [post]
func (h projectHandler) advanceStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, evaluation, advanced, err := h.projectRepo.AdvanceToExecution(projectID)
		if err != nil {
			if errs.IsGateNotSatisfied(err) {
				w.WriteHeader(http.StatusConflict)
				h.responder.WriteJSON(w, map[string]interface{}{
					"error":           err.Error(),
					"status":          "error",
					"classification":  evaluation.Classification,
					"approving_count": evaluation.ApprovingCount,
				})
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("advance status of", "project", err))
			return
		}

		if advanced {
			go h.notifyGateApproved(project)
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:         project.Status,
			ApprovingCount: evaluation.ApprovingCount,
			Classification: string(evaluation.Classification),
		})
	}
}

// notifyGateApproved tells the owner their project cleared the gate. Runs
// off the request path; failures are logged by the notifier.
func (h projectHandler) notifyGateApproved(project *models.Project) {
	owner, err := h.userRepo.FindByID(project.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to load owner for gate notification")
		return
	}
	h.notifier.GateApproved(project, owner)
}

// parseProjectID extracts and validates the projectID URL parameter.
func parseProjectID(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}
