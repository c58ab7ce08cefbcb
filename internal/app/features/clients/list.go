// internal/app/features/clients/list.go
package clients

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/paging"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/models"
)

// HandleList returns one page of the tenant's clients.
//
// Route: GET /api/clients?q=&status=&clientType=&page=&pageSize=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	advocateID, err := user.AdvocateObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid tenant")
		return
	}

	page := paging.Parse(r)
	filters := parseFilters(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	clients, total, err := h.Store.List(ctx, advocateID, filters, page.Skip(), page.Limit())
	if err != nil {
		webjson.RespondError(w, h.Log, "list clients", err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	webjson.Respond(w, http.StatusOK, listResponse{
		Clients:    clients,
		Total:      total,
		Page:       page.Number,
		PageSize:   page.Normalized().Size,
		TotalPages: paging.TotalPages(total, page.Normalized().Size),
	})
}
