// internal/app/features/cases/create.go
package cases

import (
	"context"
	"net/http"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/errs"
)

// HandleCreate creates a case in the caller's tenant. The referenced
// client must exist in the same tenant; its name, email, and phone are
// snapshotted onto the case and never re-synced afterwards.
//
// Route: POST /api/cases
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

	var in caseInput
	if err := webjson.Decode(w, r, &in); err != nil {
		webjson.RespondError(w, h.Log, "create case: decode", err)
		return
	}
	if in.ClientID.IsZero() {
		webjson.RespondError(w, h.Log, "create case", errs.Validation("clientId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	client, err := h.Clients.GetByID(ctx, in.ClientID, advocateID)
	if err != nil {
		webjson.RespondError(w, h.Log, "create case: resolve client", err)
		return
	}

	cs := in.toModel()
	cs.AdvocateID = advocateID
	cs.CreatedBy = userID
	cs.ClientName = client.Name
	cs.ClientEmail = client.Email
	cs.ClientPhone = client.Phone

	created, err := h.Store.Create(ctx, cs)
	if err != nil {
		webjson.RespondError(w, h.Log, "create case", err)
		return
	}
	webjson.Respond(w, http.StatusCreated, created)
}
