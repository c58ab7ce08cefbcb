// internal/app/features/cases/tasks.go
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

// HandleAddTask appends a task to a case. Missing status and priority
// default to pending/medium.
//
// Route: POST /api/cases/{id}/tasks
func (h *Handler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
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

	var task models.CaseTask
	if err := webjson.Decode(w, r, &task); err != nil {
		webjson.RespondError(w, h.Log, "add task: decode", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	added, err := h.Store.AddTask(ctx, id, advocateID, task)
	if err != nil {
		webjson.RespondError(w, h.Log, "add task", err)
		return
	}
	webjson.Respond(w, http.StatusCreated, added)
}
