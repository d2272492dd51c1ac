package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/personal-goal-tracker-backend/database"
	"github.com/rpupo63/personal-goal-tracker-backend/errs"
	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

// reviewerSearchLimit caps directory search results for reviewer selection.
const reviewerSearchLimit = 10

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// UserCollection represents reviewer candidates matching a search
type UserCollection struct {
	Users []*models.User `json:"users"`
	Total int            `json:"total,omitempty"`
}

// searchUsers finds reviewer candidates by partial email or name match,
// excluding the requesting user.
func (h userHandler) searchUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing authenticated user"))
			return
		}

		query := r.URL.Query().Get("query")

		users, err := h.userRepo.Search(query, userID, reviewerSearchLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "users", err))
			return
		}

		h.responder.WriteJSON(w, UserCollection{Users: users, Total: len(users)})
	}
}
