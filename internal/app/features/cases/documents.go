// internal/app/features/cases/documents.go
package cases

import (
	"context"
	"net/http"
	"net/url"

	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"github.com/advocateworks/lexhub/internal/app/system/timeouts"
	"github.com/advocateworks/lexhub/internal/app/system/webjson"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleAddDocument appends document metadata to a case. The file itself
// lives with the upload collaborator; only its metadata is stored here,
// and the url is taken verbatim.
//
// Route: POST /api/cases/{id}/documents
func (h *Handler) HandleAddDocument(w http.ResponseWriter, r *http.Request) {
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

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad case id")
		return
	}

	var doc models.CaseDocument
	if err := webjson.Decode(w, r, &doc); err != nil {
		webjson.RespondError(w, h.Log, "add document: decode", err)
		return
	}
	doc.UploadedBy = userID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	added, err := h.Store.AddDocument(ctx, id, advocateID, doc)
	if err != nil {
		webjson.RespondError(w, h.Log, "add document", err)
		return
	}
	webjson.Respond(w, http.StatusCreated, added)
}

// HandleRemoveDocument removes every document with the given name from
// the case. Document names are not unique, so duplicates all go at once.
//
// Route: DELETE /api/cases/{id}/documents/{name}
func (h *Handler) HandleRemoveDocument(w http.ResponseWriter, r *http.Request) {
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
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		webjson.Error(w, http.StatusBadRequest, "bad document name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Store.RemoveDocument(ctx, id, advocateID, name); err != nil {
		webjson.RespondError(w, h.Log, "remove document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
