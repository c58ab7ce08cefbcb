// internal/app/features/clients/delete.go
package clients

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

// HandleDelete removes a client and cascades to every case referencing
// it. The response reports how many cases went with it.
//
// Route: DELETE /api/clients/{id}
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
		webjson.Error(w, http.StatusBadRequest, "bad client id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	res, err := h.Store.Delete(ctx, id, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "delete client", err)
		return
	}

	h.Log.Info("client deleted",
		zap.String("client_id", idHex),
		zap.Int64("cases_deleted", res.CasesDeleted))
	webjson.Respond(w, http.StatusOK, res)
}
