// internal/app/features/cases/notes.go
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

// HandleAddNote appends a note to a case. The author is always the
// signed-in user; the body cannot impersonate someone else.
//
// Route: POST /api/cases/{id}/notes
func (h *Handler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
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

	var note models.CaseNote
	if err := webjson.Decode(w, r, &note); err != nil {
		webjson.RespondError(w, h.Log, "add note: decode", err)
		return
	}
	note.Author = userID

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	added, err := h.Store.AddNote(ctx, id, advocateID, note)
	if err != nil {
		webjson.RespondError(w, h.Log, "add note", err)
		return
	}
	webjson.Respond(w, http.StatusCreated, added)
}
