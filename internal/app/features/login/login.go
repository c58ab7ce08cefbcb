// internal/app/features/login/login.go
package login

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin checks credentials and issues the session cookie. Unknown
// email and wrong password return the same message so the endpoint
// cannot be used to probe which accounts exist.
//
// Route: POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "login: decode", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errs.IsNotFound(err) {
			webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		webjson.RespondError(w, h.Log, "login: lookup", err)
		return
	}

	if u.PasswordHash == "" {
		// OAuth-only account with no password set.
		webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		webjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		if err == auth.ErrNoTenant {
			h.Log.Warn("login blocked: user has no resolvable tenant", zap.String("user_id", u.ID.Hex()))
			webjson.Error(w, http.StatusForbidden, "account is not linked to an advocate")
			return
		}
		webjson.RespondError(w, h.Log, "login: sign in", err)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))
	webjson.Respond(w, http.StatusOK, u)
}

// HandleLogout clears the session cookie. Always succeeds.
//
// Route: POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("logout: clearing session failed", zap.Error(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
