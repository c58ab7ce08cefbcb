// internal/app/features/cases/delete.go
package cases

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete removes a single case. Embedded documents, notes, and
// tasks go with it; the client record is untouched (its counters drift
// until the next recompute).
//
// Route: DELETE /api/cases/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	advocateID, err := user.AdvocateObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid tenant")
		return
	}

	idHex := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad case id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Delete(ctx, id, advocateID); err != nil {
		webjson.RespondError(w, h.Log, "delete case", err)
		return
	}

	h.Log.Info("case deleted", zap.String("case_id", idHex))
	w.WriteHeader(http.StatusNoContent)
}
