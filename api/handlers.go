package api

import (
	"github.com/rpupo63/personal-goal-tracker-backend/database"
	"github.com/rpupo63/personal-goal-tracker-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, notifier services.Notifier, issuer tokenIssuer) *routeHandlers {
	return &routeHandlers{
		authHandler:           newAuthHandler(database.UserRepo(), issuer),
		userHandler:           newUserHandler(database.UserRepo()),
		projectHandler:        newProjectHandler(database.ProjectRepo(), database.UserRepo(), notifier),
		reviewerHandler:       newReviewerHandler(database.ReviewerRepo(), database.ProjectRepo(), database.UserRepo()),
		reviewHandler:         newReviewHandler(database.ReviewRepo(), database.ProjectRepo(), database.UserRepo(), notifier),
		progressUpdateHandler: newProgressUpdateHandler(database.ProgressUpdateRepo(), database.ProjectRepo()),
	}
}
