// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// HandleView returns the signed-in user's account record.
//
// Route: GET /me
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	id, err := user.UserObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		webjson.RespondError(w, h.Log, "view profile", err)
		return
	}
	webjson.Respond(w, http.StatusOK, u)
}

type profileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleUpdate changes the user's name and email. The session keeps its
// old copies until the next sign-in; handlers only trust the id.
//
// Route: PUT /me
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	id, err := user.UserObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid user id")
		return
	}

	var in profileInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "update profile: decode", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, id, in.Name, in.Email); err != nil {
		webjson.RespondError(w, h.Log, "update profile", err)
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		webjson.RespondError(w, h.Log, "update profile: reload", err)
		return
	}
	webjson.Respond(w, http.StatusOK, u)
}

type passwordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleChangePassword sets a new password. The current password is
// required unless the account is OAuth-only and has none yet.
//
// Route: PUT /me/password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	id, err := user.UserObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid user id")
		return
	}

	var in passwordInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "change password: decode", err)
		return
	}
	if len(in.NewPassword) < 8 {
		webjson.RespondError(w, h.Log, "change password", errs.Validation("password must be at least 8 characters"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		webjson.RespondError(w, h.Log, "change password: load", err)
		return
	}
	if u.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			webjson.Error(w, http.StatusForbidden, "current password is incorrect")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		webjson.RespondError(w, h.Log, "change password: hash", err)
		return
	}
	if err := h.Users.SetPassword(ctx, id, string(hash)); err != nil {
		webjson.RespondError(w, h.Log, "change password", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetSubscription replaces the informational subscription record.
// No plan lifecycle is enforced; billing happens elsewhere.
//
// Route: PUT /me/subscription
func (h *Handler) HandleSetSubscription(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	id, err := user.UserObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid user id")
		return
	}

	var sub models.Subscription
	if err := webjson.Decode(w, r, &sub); err != nil {
		webjson.RespondError(w, h.Log, "set subscription: decode", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetSubscription(ctx, id, sub); err != nil {
		webjson.RespondError(w, h.Log, "set subscription", err)
		return
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		webjson.RespondError(w, h.Log, "set subscription: reload", err)
		return
	}
	webjson.Respond(w, http.StatusOK, u)
}
