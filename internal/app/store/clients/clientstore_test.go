package clientstore_test

import (
	"fmt"
	"testing"

	clientstore "github.com/advocateworks/lexhub/internal/app/store/clients"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/advocateworks/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newClient(advocateID primitive.ObjectID, name, email string) models.Client {
	return models.Client{
		Name:             name,
		Email:            email,
		Phone:            "+91-98-0000-0001",
		Address:          "4 High Court Rd",
		EmergencyContact: "+91-98-0000-0002",
		AdvocateID:       advocateID,
		CreatedBy:        advocateID,
	}
}

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := primitive.NewObjectID()
	c, err := store.Create(ctx, newClient(adv, "Ravi Kumar", "Ravi@Example.COM"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if c.Email != "ravi@example.com" {
		t.Errorf("email = %q, want normalized", c.Email)
	}
	if c.ClientType != "individual" {
		t.Errorf("clientType = %q, want default individual", c.ClientType)
	}
	if c.Status != models.ClientActive {
		t.Errorf("status = %q, want default active", c.Status)
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := primitive.NewObjectID()
	c := newClient(adv, "Ravi", "r@example.com")
	c.Phone = ""
	if _, err := store.Create(ctx, c); !errs.IsValidation(err) {
		t.Errorf("expected validation error for missing phone, got %v", err)
	}
}

func TestCreate_DuplicateEmailSameTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := primitive.NewObjectID()
	if _, err := store.Create(ctx, newClient(adv, "First", "dup@example.com")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, newClient(adv, "Second", "dup@example.com")); err != clientstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_SameEmailDifferentTenants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Two advocates may represent the same person; uniqueness is per
	// tenant.
	if _, err := store.Create(ctx, newClient(primitive.NewObjectID(), "A", "shared@example.com")); err != nil {
		t.Fatalf("tenant A Create failed: %v", err)
	}
	if _, err := store.Create(ctx, newClient(primitive.NewObjectID(), "B", "shared@example.com")); err != nil {
		t.Errorf("tenant B Create failed: %v", err)
	}
}

func TestGetByID_TenantIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	c, err := store.Create(ctx, newClient(owner, "Private", "private@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another tenant's read is indistinguishable from a missing id.
	if _, err := store.GetByID(ctx, c.ID, other); !errs.IsNotFound(err) {
		t.Errorf("cross-tenant read: expected not-found, got %v", err)
	}
	if _, err := store.GetByID(ctx, primitive.NewObjectID(), owner); !errs.IsNotFound(err) {
		t.Errorf("missing id: expected not-found, got %v", err)
	}
}

func TestList_FiltersAndPagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := primitive.NewObjectID()
	for i := 0; i < 5; i++ {
		c := newClient(adv, fmt.Sprintf("Client %02d", i), fmt.Sprintf("c%02d@example.com", i))
		if i >= 3 {
			c.Status = models.ClientInactive
		}
		if _, err := store.Create(ctx, c); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	// Noise in another tenant must never appear.
	if _, err := store.Create(ctx, newClient(primitive.NewObjectID(), "Client 00", "other@example.com")); err != nil {
		t.Fatalf("other-tenant Create failed: %v", err)
	}

	got, total, err := store.List(ctx, adv, clientstore.Filters{}, 0, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 || len(got) != 5 {
		t.Errorf("unfiltered: total=%d len=%d, want 5/5", total, len(got))
	}

	got, total, err = store.List(ctx, adv, clientstore.Filters{Statuses: []string{models.ClientInactive}}, 0, 10)
	if err != nil {
		t.Fatalf("List by status failed: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Errorf("status filter: total=%d len=%d, want 2/2", total, len(got))
	}

	got, total, err = store.List(ctx, adv, clientstore.Filters{Search: "client 01"}, 0, 10)
	if err != nil {
		t.Fatalf("List by search failed: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].Name != "Client 01" {
		t.Errorf("search filter: total=%d got=%v", total, got)
	}

	// Pages concatenate without gaps or overlap.
	page1, total, err := store.List(ctx, adv, clientstore.Filters{}, 0, 2)
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	page2, _, err := store.List(ctx, adv, clientstore.Filters{}, 2, 2)
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	page3, _, err := store.List(ctx, adv, clientstore.Filters{}, 4, 2)
	if err != nil {
		t.Fatalf("page 3 failed: %v", err)
	}
	if total != 5 || len(page1)+len(page2)+len(page3) != 5 {
		t.Errorf("pagination: total=%d pages=%d+%d+%d", total, len(page1), len(page2), len(page3))
	}
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range [][]models.Client{page1, page2, page3} {
		for _, c := range p {
			if seen[c.ID] {
				t.Errorf("client %s appeared on two pages", c.ID.Hex())
			}
			seen[c.ID] = true
		}
	}
}

func TestUpdate_ReplaceSemantics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := primitive.NewObjectID()
	c, err := store.Create(ctx, newClient(adv, "Before", "before@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c.Name = "After"
	c.Email = "after@example.com"
	c.Status = models.ClientInactive
	c.ClientType = "corporate"
	if err := store.Update(ctx, c.ID, adv, c); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, c.ID, adv)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "After" || got.Status != models.ClientInactive || got.ClientType != "corporate" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.AdvocateID != adv {
		t.Errorf("advocateId changed to %s", got.AdvocateID.Hex())
	}
	if got.CreatedAt.IsZero() || !got.CreatedAt.Equal(c.CreatedAt) {
		t.Errorf("createdAt modified: %v vs %v", got.CreatedAt, c.CreatedAt)
	}
}

func TestUpdate_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := primitive.NewObjectID()
	c, err := store.Create(ctx, newClient(adv, "Mine", "mine@example.com"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c.Name = "Stolen"
	if err := store.Update(ctx, c.ID, primitive.NewObjectID(), c); !errs.IsNotFound(err) {
		t.Errorf("expected not-found for cross-tenant update, got %v", err)
	}
}

func TestDelete_CascadesCases(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	adv := fix.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fix.CreateClient(ctx, "Doomed", "doomed@example.com", adv.ID)
	for i := 0; i < 3; i++ {
		fix.CreateCase(ctx, fmt.Sprintf("CASE-%d", i), "Matter", client)
	}
	// A case belonging to a different client must survive.
	survivor := fix.CreateClient(ctx, "Survivor", "survivor@example.com", adv.ID)
	fix.CreateCase(ctx, "KEEP-1", "Kept Matter", survivor)

	res, err := store.Delete(ctx, client.ID, adv.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if res.CasesDeleted != 3 {
		t.Errorf("casesDeleted = %d, want 3", res.CasesDeleted)
	}

	// No orphan cases remain.
	n, err := db.Collection("cases").CountDocuments(ctx, bson.M{"clientId": client.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("%d orphan cases remain", n)
	}
	if _, err := store.GetByID(ctx, client.ID, adv.ID); !errs.IsNotFound(err) {
		t.Errorf("client still readable after delete: %v", err)
	}

	keep, err := db.Collection("cases").CountDocuments(ctx, bson.M{"clientId": survivor.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if keep != 1 {
		t.Errorf("survivor's cases = %d, want 1", keep)
	}
}

func TestDelete_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	adv := fix.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fix.CreateClient(ctx, "Mine", "mine@example.com", adv.ID)
	fix.CreateCase(ctx, "CASE-1", "Matter", client)

	if _, err := store.Delete(ctx, client.ID, primitive.NewObjectID()); !errs.IsNotFound(err) {
		t.Errorf("expected not-found for cross-tenant delete, got %v", err)
	}

	// Nothing was removed.
	n, err := db.Collection("cases").CountDocuments(ctx, bson.M{"clientId": client.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("cases = %d, want 1 untouched", n)
	}
}

func TestRecomputeAggregates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := clientstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	adv := fix.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fix.CreateClient(ctx, "Billed", "billed@example.com", adv.ID)

	fix.CreateCaseWithFees(ctx, "AGG-1", client, 1000, 400)
	fix.CreateCaseWithFees(ctx, "AGG-2", client, 500, 500)
	closed := fix.CreateCase(ctx, "AGG-3", "Closed Matter", client)
	if _, err := db.Collection("cases").UpdateByID(ctx, closed.ID, bson.M{"$set": bson.M{"status": models.CaseClosed}}); err != nil {
		t.Fatalf("close case failed: %v", err)
	}

	got, err := store.RecomputeAggregates(ctx, client.ID, adv.ID)
	if err != nil {
		t.Fatalf("RecomputeAggregates failed: %v", err)
	}
	if got.TotalCases != 3 {
		t.Errorf("totalCases = %d, want 3", got.TotalCases)
	}
	if got.ActiveCases != 2 {
		t.Errorf("activeCases = %d, want 2", got.ActiveCases)
	}
	if got.ClosedCases != 1 {
		t.Errorf("closedCases = %d, want 1", got.ClosedCases)
	}
	if got.TotalFees != 1500 || got.PaidFees != 900 || got.PendingFees != 600 {
		t.Errorf("fees = %v/%v/%v, want 1500/900/600", got.TotalFees, got.PaidFees, got.PendingFees)
	}
}
