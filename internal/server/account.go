package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytq/internal/models"
)

// UserStore is the persistence the account endpoints need.
type UserStore interface {
	UserLookup
	Update(user *models.User) error
}

// AccountHandlers serves endpoints about the authenticated user.
type AccountHandlers struct {
	users  UserStore
	logger *log.Logger
}

// NewAccountHandlers creates account handlers.
func NewAccountHandlers(users UserStore, logger *log.Logger) *AccountHandlers {
	return &AccountHandlers{users: users, logger: logger}
}

// Show handles GET /api/account.
func (h *AccountHandlers) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user.Account())
}

// Subscribe handles POST /api/subscribe, marking the authenticated user as subscribed.
func (h *AccountHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user.SetSubscribed(true)
	if err := h.users.Update(user); err != nil {
		h.logger.Error("failed to subscribe user", "user", user.Username(), "error", err)
		writeError(w, statusFor(err), "failed to update subscription")
		return
	}

	writeMessage(w, http.StatusOK, "Subscription successful!")
}
