package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler           authHandler
	userHandler           userHandler
	projectHandler        projectHandler
	reviewerHandler       reviewerHandler
	reviewHandler         reviewHandler
	progressUpdateHandler progressUpdateHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"reviewer_id"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
