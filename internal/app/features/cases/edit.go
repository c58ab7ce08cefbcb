// internal/app/features/cases/edit.go
package cases

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleUpdate replaces a case's scalar fields with the submitted
// representation; omitted documents/notes/tasks stay as stored. The
// client reference and snapshot are not editable here — moving a case to
// a different client is not supported.
//
// Route: PUT /api/cases/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var in caseInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "update case: decode", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The stored client reference wins over whatever the form sent.
	current, err := h.Store.GetByID(ctx, id, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "update case: load", err)
		return
	}
	cs := in.toModel()
	cs.ClientID = current.ClientID

	if err := h.Store.Update(ctx, id, advocateID, cs); err != nil {
		webjson.RespondError(w, h.Log, "update case", err)
		return
	}

	updated, err := h.Store.GetByID(ctx, id, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "update case: reload", err)
		return
	}
	webjson.Respond(w, http.StatusOK, updated)
}
