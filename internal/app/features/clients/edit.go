// internal/app/features/clients/edit.go
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

// HandleUpdate replaces a client's mutable fields with the submitted
// representation. Last writer wins; there is no field-level merge.
//
// Route: PUT /api/clients/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var in clientInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "update client: decode", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.Update(ctx, id, advocateID, in.toModel()); err != nil {
		webjson.RespondError(w, h.Log, "update client", err)
		return
	}

	c, err := h.Store.GetByID(ctx, id, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "update client: reload", err)
		return
	}
	webjson.Respond(w, http.StatusOK, c)
}
