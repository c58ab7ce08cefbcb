package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAdvocate creates a main advocate account. Main advocates own a
// tenant, so their own id is the tenant id for everything they create.
func (f *Fixtures) CreateAdvocate(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:             primitive.NewObjectID(),
		Name:           name,
		NameCI:         text.Fold(name),
		Email:          email,
		Roles:          []string{models.RoleAdvocate},
		IsMainAdvocate: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test advocate: %v", err)
	}
	return u
}

// CreateTeamMember creates a subordinate user working inside the given
// advocate's tenant.
func (f *Fixtures) CreateTeamMember(ctx context.Context, name, email string, advocateID primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		Email:      email,
		Roles:      []string{models.RoleTeamMember},
		AdvocateID: &advocateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test team member: %v", err)
	}
	return u
}

// CreateClient creates an active individual client in the advocate's
// tenant.
func (f *Fixtures) CreateClient(ctx context.Context, name, email string, advocateID primitive.ObjectID) models.Client {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Client{
		ID:               primitive.NewObjectID(),
		Name:             name,
		NameCI:           text.Fold(name),
		Email:            email,
		Phone:            "+1-555-0100",
		Address:          "12 Court St",
		EmergencyContact: "+1-555-0199",
		ClientType:       "individual",
		Status:           models.ClientActive,
		AdvocateID:       advocateID,
		CreatedBy:        advocateID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("clients").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test client: %v", err)
	}
	return c
}

// CreateCase creates an active civil case for the client, with empty
// embedded collections and zeroed fees.
func (f *Fixtures) CreateCase(ctx context.Context, caseNumber, title string, client models.Client) models.Case {
	f.t.Helper()

	now := time.Now().UTC()
	cs := models.Case{
		ID:               primitive.NewObjectID(),
		CaseNumber:       caseNumber,
		CaseNumberCI:     text.Fold(caseNumber),
		Title:            title,
		TitleCI:          text.Fold(title),
		CaseType:         "civil",
		Status:           models.CaseActive,
		Priority:         "medium",
		ClientID:         client.ID,
		ClientName:       client.Name,
		ClientNameCI:     client.NameCI,
		ClientEmail:      client.Email,
		ClientPhone:      client.Phone,
		CreatedBy:        client.AdvocateID,
		AdvocateID:       client.AdvocateID,
		Fees:             models.Fees{Currency: "INR"},
		Documents:        []models.CaseDocument{},
		Notes:            []models.CaseNote{},
		Tasks:            []models.CaseTask{},
		RegistrationDate: now,
		FilingDate:       now,
		Year:             now.Year(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("cases").InsertOne(ctx, cs); err != nil {
		f.t.Fatalf("failed to create test case: %v", err)
	}
	return cs
}

// CreateCaseWithFees creates a case with the given fee amounts, deriving
// the pending balance.
func (f *Fixtures) CreateCaseWithFees(ctx context.Context, caseNumber string, client models.Client, total, paid float64) models.Case {
	f.t.Helper()

	cs := f.CreateCase(ctx, caseNumber, "Fee Case "+caseNumber, client)
	fees := models.Fees{TotalAmount: total, PaidAmount: paid, Currency: "INR"}.Derived()
	if _, err := f.db.Collection("cases").UpdateByID(ctx, cs.ID, bson.M{"$set": bson.M{"fees": fees}}); err != nil {
		f.t.Fatalf("failed to set test case fees: %v", err)
	}
	cs.Fees = fees
	return cs
}
