// internal/app/features/authgoogle/flow.go
package authgoogle

import (
	"context"
	"net/http"
	"strings"

	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

/*
GET /auth/google initiates the flow: issue a single-use state token and
redirect to Google's consent screen.
*/
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		http.Redirect(w, r, "/login?error=google_not_configured", http.StatusSeeOther)
		return
	}

	returnTo := query.Get(r, "return")
	if !strings.HasPrefix(returnTo, "/") {
		returnTo = ""
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	state, err := h.StateStore.Issue(ctx, returnTo)
	if err != nil {
		h.Log.Error("failed to issue OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

/*
GET /auth/google/callback finishes the flow: consume the state token,
exchange the code, fetch the Google profile, find or create the account,
and sign in. New accounts become main advocates — a self-service signup
is always a tenant root.
*/
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		http.Redirect(w, r, "/login?error=google_denied", http.StatusSeeOther)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	returnTo, err := h.StateStore.Consume(ctx, state)
	if err != nil {
		h.Log.Warn("invalid or expired OAuth state", zap.Error(err))
		http.Redirect(w, r, "/login?error=invalid_state", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/login?error=invalid_code", http.StatusSeeOther)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		http.Redirect(w, r, "/login?error=token_exchange", http.StatusSeeOther)
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		http.Redirect(w, r, "/login?error=user_info", http.StatusSeeOther)
		return
	}
	if !googleUser.EmailVerified {
		h.Log.Warn("Google account email not verified", zap.String("email", googleUser.Email))
		http.Redirect(w, r, "/login?error=email_unverified", http.StatusSeeOther)
		return
	}

	u, err := h.findOrCreateUser(ctx, googleUser)
	if err != nil {
		h.Log.Error("Google OAuth: account resolution failed", zap.Error(err))
		http.Redirect(w, r, "/login?error=internal", http.StatusSeeOther)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u); err != nil {
		h.Log.Error("Google OAuth: sign in failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		http.Redirect(w, r, "/login?error=session", http.StatusSeeOther)
		return
	}

	h.Log.Info("user logged in via Google OAuth", zap.String("user_id", u.ID.Hex()))

	if returnTo == "" {
		returnTo = "/dashboard"
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// findOrCreateUser resolves the Google identity to an account: first by
// linked (provider, subject), then by email (linking on match), and
// finally by creating a fresh main-advocate account.
func (h *Handler) findOrCreateUser(ctx context.Context, gu *googleUserInfo) (*models.User, error) {
	u, err := h.Users.GetByOAuth(ctx, "google", gu.ID)
	if err == nil {
		return u, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	u, err = h.Users.GetByEmail(ctx, gu.Email)
	if err == nil {
		if linkErr := h.Users.LinkOAuth(ctx, u.ID, "google", gu.ID); linkErr != nil {
			h.Log.Warn("failed to link Google identity", zap.Error(linkErr), zap.String("user_id", u.ID.Hex()))
		}
		return u, nil
	}
	if !errs.IsNotFound(err) {
		return nil, err
	}

	created, err := h.Users.Create(ctx, models.User{
		Name:           gu.Name,
		Email:          gu.Email,
		OAuthProvider:  "google",
		OAuthSubject:   gu.ID,
		Roles:          []string{models.RoleAdvocate},
		IsMainAdvocate: true,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
