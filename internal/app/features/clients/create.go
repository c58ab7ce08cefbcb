// internal/app/features/clients/create.go
package clients

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
)

// HandleCreate creates a client in the caller's tenant.
//
// Route: POST /api/clients
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	advocateID, err := user.AdvocateObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid tenant")
		return
	}
	userID, err := user.UserObjectID()
	if err != nil {
		webjson.Error(w, http.StatusUnauthorized, "session has no valid user id")
		return
	}

	var in clientInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "create client: decode", err)
		return
	}

	c := in.toModel()
	c.AdvocateID = advocateID
	c.CreatedBy = userID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Store.Create(ctx, c)
	if err != nil {
		webjson.RespondError(w, h.Log, "create client", err)
		return
	}
	webjson.Respond(w, http.StatusCreated, created)
}
