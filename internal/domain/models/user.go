// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account: a main advocate, a team member under an
// advocate, an admin, or a client login.
//
// NOTE:
//   - Field names are stored verbatim (camelCase) because the dashboard
//     UI binds to them directly.
//   - A main advocate owns data; a subordinate user's AdvocateID points
//     to the main advocate whose tenant they belong to. A main advocate
//     never has AdvocateID set.
type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	NameCI string             `bson:"nameCI" json:"-"` // lowercase, diacritics-stripped
	Email  string             `bson:"email" json:"email"`

	// PasswordHash is empty for OAuth-only accounts until a password is
	// explicitly set.
	PasswordHash  string `bson:"passwordHash,omitempty" json:"-"`
	OAuthProvider string `bson:"oauthProvider,omitempty" json:"oauthProvider,omitempty"`
	OAuthSubject  string `bson:"oauthSubject,omitempty" json:"-"`

	// Roles is a non-empty set drawn from advocate | team_member |
	// admin | client.
	Roles []string `bson:"roles" json:"roles"`

	IsMainAdvocate bool                `bson:"isMainAdvocate" json:"isMainAdvocate"`
	AdvocateID     *primitive.ObjectID `bson:"advocateId,omitempty" json:"advocateId,omitempty"`

	Subscription *Subscription `bson:"subscription,omitempty" json:"subscription,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Subscription is informational only; no lifecycle transitions are
// enforced on it.
type Subscription struct {
	Plan      string     `bson:"plan,omitempty" json:"plan,omitempty"`
	Status    string     `bson:"status,omitempty" json:"status,omitempty"`
	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// EffectiveAdvocateID resolves the tenant this user operates in: a main
// advocate owns data directly, a subordinate user belongs to the main
// advocate referenced by AdvocateID. The second return is false when the
// user has no resolvable tenant (a legacy record the tenant migration
// has not repaired).
func (u User) EffectiveAdvocateID() (primitive.ObjectID, bool) {
	if u.IsMainAdvocate {
		return u.ID, true
	}
	if u.AdvocateID != nil && !u.AdvocateID.IsZero() {
		return *u.AdvocateID, true
	}
	return primitive.NilObjectID, false
}
