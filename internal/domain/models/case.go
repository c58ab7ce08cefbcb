// internal/domain/models/case.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case is the central work record. It is owned by one advocate,
// references one client, and embeds documents, notes, and tasks as
// sub-collections with no identity outside their parent.
type Case struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CaseNumber   string             `bson:"caseNumber" json:"caseNumber"`
	CaseNumberCI string             `bson:"caseNumberCI" json:"-"`
	Title        string             `bson:"title" json:"title"`
	TitleCI      string             `bson:"titleCI" json:"-"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`

	CaseType string `bson:"caseType" json:"caseType"` // civil | criminal | family | corporate | property | other
	Status   string `bson:"status" json:"status"`     // active | closed | pending | on_hold | settled | dismissed
	Priority string `bson:"priority" json:"priority"` // low | medium | high | urgent

	// Stage is optional and left free during edits even though creation
	// validates it against the known stages.
	Stage string `bson:"stage,omitempty" json:"stage,omitempty"`

	// ClientName/Email/Phone are copied from the client at creation time
	// and are NOT re-synced when the client record changes afterwards.
	ClientID     primitive.ObjectID `bson:"clientId" json:"clientId"`
	ClientName   string             `bson:"clientName" json:"clientName"`
	ClientNameCI string             `bson:"clientNameCI" json:"-"`
	ClientEmail  string             `bson:"clientEmail" json:"clientEmail"`
	ClientPhone  string             `bson:"clientPhone" json:"clientPhone"`

	AssignedTo []primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedBy  primitive.ObjectID   `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	AdvocateID primitive.ObjectID   `bson:"advocateId" json:"advocateId"`

	Fees Fees `bson:"fees" json:"fees"`

	Documents []CaseDocument `bson:"documents" json:"documents"`
	Notes     []CaseNote     `bson:"notes" json:"notes"`
	Tasks     []CaseTask     `bson:"tasks" json:"tasks"`

	// Advisory dates; no ordering between them is enforced.
	RegistrationDate time.Time  `bson:"registrationDate" json:"registrationDate"`
	FilingDate       time.Time  `bson:"filingDate" json:"filingDate"`
	PreviousDate     *time.Time `bson:"previousDate,omitempty" json:"previousDate,omitempty"`
	NextHearingDate  *time.Time `bson:"nextHearingDate,omitempty" json:"nextHearingDate,omitempty"`
	DeadlineDate     *time.Time `bson:"deadlineDate,omitempty" json:"deadlineDate,omitempty"`
	ClosedDate       *time.Time `bson:"closedDate,omitempty" json:"closedDate,omitempty"`
	Year             int        `bson:"year,omitempty" json:"year,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Fees is the financial sub-record of a case.
type Fees struct {
	TotalAmount   float64 `bson:"totalAmount" json:"totalAmount"`
	PaidAmount    float64 `bson:"paidAmount" json:"paidAmount"`
	PendingAmount float64 `bson:"pendingAmount" json:"pendingAmount"`
	Currency      string  `bson:"currency,omitempty" json:"currency,omitempty"`
}

// Derived returns a copy with PendingAmount recomputed as
// TotalAmount - PaidAmount. Negative values are kept, never clamped:
// an overpaid case legitimately shows a negative pending fee.
func (f Fees) Derived() Fees {
	f.PendingAmount = f.TotalAmount - f.PaidAmount
	return f
}

// CaseDocument is file metadata stored verbatim from the upload
// collaborator; the url is not validated for reachability. Name is the
// de facto key within a case for removal.
type CaseDocument struct {
	Name       string             `bson:"name" json:"name"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	Size       int64              `bson:"size,omitempty" json:"size,omitempty"`
	URL        string             `bson:"url" json:"url"`
	UploadedAt time.Time          `bson:"uploadedAt" json:"uploadedAt"`
	UploadedBy primitive.ObjectID `bson:"uploadedBy,omitempty" json:"uploadedBy,omitempty"`
}

// CaseNote is a timestamped note on a case. IsPrivate is a visibility
// hint for the UI, not enforced access control.
type CaseNote struct {
	Content   string             `bson:"content" json:"content"`
	Author    primitive.ObjectID `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	IsPrivate bool               `bson:"isPrivate" json:"isPrivate"`
}

// CaseTask is a to-do embedded in a case.
type CaseTask struct {
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	DueDate     *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Status      string              `bson:"status" json:"status"`     // pending | in_progress | completed | overdue
	Priority    string              `bson:"priority" json:"priority"` // low | medium | high
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}
