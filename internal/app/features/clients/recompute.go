// internal/app/features/clients/recompute.go
package clients

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleRecompute rebuilds the client's denormalized case counters and
// fee totals from the cases collection and returns the repaired record.
// Counters drift because case writes do not update them transactionally.
//
// Route: POST /api/clients/{id}/recompute
func (h *Handler) HandleRecompute(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	advocateID, err := user.AdvocateObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid tenant")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad client id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	c, err := h.Store.RecomputeAggregates(ctx, id, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "recompute client aggregates", err)
		return
	}
	webjson.Respond(w, http.StatusOK, c)
}
