// internal/domain/models/client.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a person or organization represented by an advocate. It is
// owned by exactly one advocate (AdvocateID) and referenced by Cases.
// Deleting a client cascade-deletes its cases: no case may outlive its
// client.
type Client struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"nameCI" json:"-"` // lowercase, diacritics-stripped

	Email            string `bson:"email" json:"email"`
	Phone            string `bson:"phone" json:"phone"`
	Address          string `bson:"address" json:"address"`
	EmergencyContact string `bson:"emergencyContact" json:"emergencyContact"`

	ClientType string `bson:"clientType" json:"clientType"` // individual | corporate | government
	Status     string `bson:"status" json:"status"`         // active | inactive | prospect | former

	// Denormalized counters mirroring the cases collection. They are not
	// maintained transactionally on case create/delete; the recompute
	// endpoint repairs them on demand.
	TotalCases  int     `bson:"totalCases" json:"totalCases"`
	ActiveCases int     `bson:"activeCases" json:"activeCases"`
	ClosedCases int     `bson:"closedCases" json:"closedCases"`
	TotalFees   float64 `bson:"totalFees" json:"totalFees"`
	PaidFees    float64 `bson:"paidFees" json:"paidFees"`
	PendingFees float64 `bson:"pendingFees" json:"pendingFees"`

	AdvocateID primitive.ObjectID  `bson:"advocateId" json:"advocateId"`
	AssignedTo *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedBy  primitive.ObjectID  `bson:"createdBy,omitempty" json:"createdBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
