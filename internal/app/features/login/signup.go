// internal/app/features/login/signup.go
package login

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup registers a new main advocate and signs them in. Every
// self-service signup becomes a tenant root; team members are added from
// inside an existing tenant.
//
// Route: POST /auth/signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in signupInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "signup: decode", err)
		return
	}
	if len(in.Password) < 8 {
		webjson.RespondError(w, h.Log, "signup", errs.Validation("password must be at least 8 characters"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		webjson.RespondError(w, h.Log, "signup: hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   string(hash),
		Roles:          []string{models.RoleAdvocate},
		IsMainAdvocate: true,
	})
	if err != nil {
		webjson.RespondError(w, h.Log, "signup", err)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, &u); err != nil {
		webjson.RespondError(w, h.Log, "signup: sign in", err)
		return
	}

	h.Log.Info("advocate signed up", zap.String("user_id", u.ID.Hex()))
	webjson.Respond(w, http.StatusCreated, u)
}
