package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public auth routes and the authenticated API under /api/v1.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, startupTime time.Time) {
	// Health check
	r.Get("/up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public auth endpoints
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			// Reviewer candidate search
			r.Get("/users", handlers.userHandler.searchUsers())

			// Project CRUD
			r.Get("/projects", handlers.projectHandler.getAllProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			// Review panel
			r.Get("/projects/{projectID}/reviewers", handlers.reviewerHandler.listReviewers())
			r.Post("/projects/{projectID}/reviewers", handlers.reviewerHandler.designateReviewer())
			r.Delete("/projects/{projectID}/reviewers/{reviewerID}", handlers.reviewerHandler.revokeReviewer())

			// Verdict ledger
			r.Get("/projects/{projectID}/reviews", handlers.reviewHandler.listReviews())
			r.Post("/projects/{projectID}/reviews", handlers.reviewHandler.submitReview())

			// Approval gate
			r.Get("/projects/{projectID}/gate", handlers.projectHandler.getGateStatus())
			r.Post("/projects/{projectID}/status", handlers.projectHandler.advanceStatus())

			// Progress updates
			r.Get("/projects/{projectID}/progress_updates", handlers.progressUpdateHandler.listProgressUpdates())
			r.Post("/projects/{projectID}/progress_updates", handlers.progressUpdateHandler.createProgressUpdate())
		})
	})
}
