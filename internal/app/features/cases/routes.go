// internal/app/features/cases/routes.go
package cases

import (
	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Case routes under the base path (typically
// "/api/cases" from bootstrap).
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

		pr.Post("/{id}/documents", h.HandleAddDocument)
		pr.Delete("/{id}/documents/{name}", h.HandleRemoveDocument)
		pr.Post("/{id}/notes", h.HandleAddNote)
		pr.Post("/{id}/tasks", h.HandleAddTask)
	})

	return r
}
