package userstore_test

import (
	"testing"

	userstore "github.com/advocateworks/lexhub/internal/app/store/users"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/advocateworks/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		Name:           "Asha Rao",
		Email:          "Asha@Example.COM",
		Roles:          []string{models.RoleAdvocate},
		IsMainAdvocate: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.ID.IsZero() {
		t.Error("expected generated id")
	}
	if u.Email != "asha@example.com" {
		t.Errorf("email = %q, want normalized lowercase", u.Email)
	}
	if u.AdvocateID != nil {
		t.Error("main advocate must not carry an advocateId")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := models.User{
		Name:           "First",
		Email:          "same@example.com",
		Roles:          []string{models.RoleAdvocate},
		IsMainAdvocate: true,
	}
	if _, err := store.Create(ctx, base); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	base.Name = "Second"
	if _, err := store.Create(ctx, base); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cases := []struct {
		name string
		u    models.User
	}{
		{"missing email", models.User{Name: "X", Roles: []string{models.RoleAdvocate}}},
		{"no roles", models.User{Name: "X", Email: "x@example.com"}},
		{"unknown role", models.User{Name: "X", Email: "x@example.com", Roles: []string{"superuser"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.u); !errs.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetByEmail_Normalizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	created := fix.CreateAdvocate(ctx, "Asha Rao", "asha@example.com")

	got, err := store.GetByEmail(ctx, "  ASHA@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got id %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errs.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	u := fix.CreateAdvocate(ctx, "Old Name", "old@example.com")

	if err := store.UpdateProfile(ctx, u.ID, "New  Name", "NEW@example.com"); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name = %q, want collapsed whitespace", got.Name)
	}
	if got.Email != "new@example.com" {
		t.Errorf("email = %q, want normalized", got.Email)
	}
}

func TestLinkOAuthAndGetByOAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	u := fix.CreateAdvocate(ctx, "OAuth User", "oauth@example.com")

	if err := store.LinkOAuth(ctx, u.ID, "google", "sub-123"); err != nil {
		t.Fatalf("LinkOAuth failed: %v", err)
	}

	got, err := store.GetByOAuth(ctx, "google", "sub-123")
	if err != nil {
		t.Fatalf("GetByOAuth failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("got id %s, want %s", got.ID.Hex(), u.ID.Hex())
	}
}

func TestSetSubscription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix := testutil.NewFixtures(t, db)
	u := fix.CreateAdvocate(ctx, "Subscriber", "sub@example.com")

	sub := models.Subscription{Plan: "premium", Status: "active"}
	if err := store.SetSubscription(ctx, u.ID, sub); err != nil {
		t.Fatalf("SetSubscription failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Subscription == nil || got.Subscription.Plan != "premium" {
		t.Errorf("subscription = %+v, want premium plan", got.Subscription)
	}
}
