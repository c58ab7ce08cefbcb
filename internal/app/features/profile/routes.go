// internal/app/features/profile/routes.go
package profile

import (
	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints (mounted under /me).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.HandleView)
	r.Put("/", h.HandleUpdate)
	r.Put("/password", h.HandleChangePassword)
	r.Put("/subscription", h.HandleSetSubscription)
	return r
}
