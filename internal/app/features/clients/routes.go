// internal/app/features/clients/routes.go
package clients

import (
	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Client routes under the base path (typically
// "/api/clients" from bootstrap). Client logins can only read; writes
// need an advocate or team member.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleView)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("advocate", "team_member", "admin"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/recompute", h.HandleRecompute)
	})

	return r
}
