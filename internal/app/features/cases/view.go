// internal/app/features/cases/view.go
package cases

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleView returns a single case. Private notes are filtered out for
// client-role viewers; they are a UI hint, not access control, but there
// is no reason to hand them to the represented party.
//
// Route: GET /api/cases/{id}
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	advocateID, err := user.AdvocateObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid tenant")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad case id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cs, err := h.Store.GetByID(ctx, id, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "view case", err)
		return
	}

	if user.HasRole(models.RoleClient) && !user.HasRole(models.RoleAdvocate) && !user.HasRole(models.RoleTeamMember) {
		visible := make([]models.CaseNote, 0, len(cs.Notes))
		for _, n := range cs.Notes {
			if !n.IsPrivate {
				visible = append(visible, n)
			}
		}
		cs.Notes = visible
	}

	webjson.Respond(w, http.StatusOK, cs)
}
