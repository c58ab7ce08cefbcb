// internal/app/features/cases/types.go
package cases

import (
	"net/http"
	"strings"
	"time"

	casestore "github.com/advocateworks/lexhub/internal/app/store/cases"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// caseInput is the JSON body accepted by create and update. Client
// contact fields are snapshotted server-side from clientId; advocateId
// comes from the session. Omitting documents/notes/tasks on update
// leaves the stored collections untouched.
type caseInput struct {
	CaseNumber  string `json:"caseNumber"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CaseType    string `json:"caseType"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Stage       string `json:"stage"`

	ClientID primitive.ObjectID `json:"clientId"`

	AssignedTo []primitive.ObjectID `json:"assignedTo"`
	Fees       models.Fees          `json:"fees"`

	Documents []models.CaseDocument `json:"documents"`
	Notes     []models.CaseNote     `json:"notes"`
	Tasks     []models.CaseTask     `json:"tasks"`

	RegistrationDate time.Time  `json:"registrationDate"`
	FilingDate       time.Time  `json:"filingDate"`
	PreviousDate     *time.Time `json:"previousDate"`
	NextHearingDate  *time.Time `json:"nextHearingDate"`
	DeadlineDate     *time.Time `json:"deadlineDate"`
	ClosedDate       *time.Time `json:"closedDate"`
	Year             int        `json:"year"`
}

func (in caseInput) toModel() models.Case {
	return models.Case{
		CaseNumber:       in.CaseNumber,
		Title:            in.Title,
		Description:      in.Description,
		CaseType:         in.CaseType,
		Status:           in.Status,
		Priority:         in.Priority,
		Stage:            in.Stage,
		ClientID:         in.ClientID,
		AssignedTo:       in.AssignedTo,
		Fees:             in.Fees,
		Documents:        in.Documents,
		Notes:            in.Notes,
		Tasks:            in.Tasks,
		RegistrationDate: in.RegistrationDate,
		FilingDate:       in.FilingDate,
		PreviousDate:     in.PreviousDate,
		NextHearingDate:  in.NextHearingDate,
		DeadlineDate:     in.DeadlineDate,
		ClosedDate:       in.ClosedDate,
		Year:             in.Year,
	}
}

// listResponse wraps one page of cases.
type listResponse struct {
	Cases      []models.Case `json:"cases"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// parseFilters reads the list query parameters. Multi-valued filters are
// comma-separated; hearing dates are RFC 3339.
func parseFilters(r *http.Request) casestore.Filters {
	f := casestore.Filters{
		Search:     query.Search(r, "q"),
		Statuses:   csv(query.Get(r, "status")),
		Priorities: csv(query.Get(r, "priority")),
		CaseTypes:  csv(query.Get(r, "caseType")),
	}
	if t, err := time.Parse(time.RFC3339, query.Get(r, "hearingFrom")); err == nil {
		f.HearingFrom = &t
	}
	if t, err := time.Parse(time.RFC3339, query.Get(r, "hearingTo")); err == nil {
		f.HearingTo = &t
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
