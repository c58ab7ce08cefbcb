// internal/app/features/clients/types.go
package clients

import (
	"net/http"
	"strings"
	"time"

	clientstore "github.com/advocateworks/lexhub/internal/app/store/clients"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// clientInput is the JSON body accepted by create and update. The
// advocateId and createdBy fields are never read from the body; they
// come from the session.
type clientInput struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	Address          string              `json:"address"`
	EmergencyContact string              `json:"emergencyContact"`
	ClientType       string              `json:"clientType"`
	Status           string              `json:"status"`
	AssignedTo       *primitive.ObjectID `json:"assignedTo"`
}

func (in clientInput) toModel() models.Client {
	return models.Client{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		EmergencyContact: in.EmergencyContact,
		ClientType:       in.ClientType,
		Status:           in.Status,
		AssignedTo:       in.AssignedTo,
	}
}

// listResponse wraps one page of clients.
type listResponse struct {
	Clients    []models.Client `json:"clients"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// parseFilters reads the list query parameters. Statuses and types are
// comma-separated; dates are RFC 3339.
func parseFilters(r *http.Request) clientstore.Filters {
	f := clientstore.Filters{
		Search:      query.Search(r, "q"),
		Statuses:    csv(query.Get(r, "status")),
		ClientTypes: csv(query.Get(r, "clientType")),
	}
	if t, err := time.Parse(time.RFC3339, query.Get(r, "createdFrom")); err == nil {
		f.CreatedFrom = &t
	}
	if t, err := time.Parse(time.RFC3339, query.Get(r, "createdTo")); err == nil {
		f.CreatedTo = &t
	}
	return f
}

func csv(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
