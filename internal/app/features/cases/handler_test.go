package cases_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/advocateworks/lexhub/internal/app/features/cases"
	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/advocateworks/lexhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*cases.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := cases.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func sessionFor(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Roles:      u.Roles,
		AdvocateID: u.ID.Hex(),
	}
}

func TestHandleCreate_SnapshotsClient(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi Kumar", "ravi@example.com", adv.ID)

	now := time.Now().UTC().Format(time.RFC3339)
	body := map[string]any{
		"caseNumber":       "CRM-2026-042",
		"title":            "State v. Accused",
		"caseType":         "criminal",
		"status":           "active",
		"priority":         "high",
		"clientId":         client.ID.Hex(),
		"registrationDate": now,
		"filingDate":       now,
		"fees":             map[string]any{"totalAmount": 5000, "paidAmount": 1000, "currency": "INR"},
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/cases", body)
	req = testutil.WithUser(req, sessionFor(adv))

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var created models.Case
	testutil.DecodeJSON(t, rec, &created)
	if created.ClientName != "Ravi Kumar" || created.ClientEmail != "ravi@example.com" {
		t.Errorf("client snapshot = %q/%q, want copied from client", created.ClientName, created.ClientEmail)
	}
	if created.Fees.PendingAmount != 4000 {
		t.Errorf("pendingAmount = %v, want 4000", created.Fees.PendingAmount)
	}
}

func TestHandleCreate_ClientFromOtherTenant(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	otherAdv := fixtures.CreateAdvocate(ctx, "Other", "other@example.com")
	foreignClient := fixtures.CreateClient(ctx, "Foreign", "foreign@example.com", otherAdv.ID)

	now := time.Now().UTC().Format(time.RFC3339)
	body := map[string]any{
		"caseNumber":       "X-1",
		"title":            "Cross Tenant Attempt",
		"caseType":         "civil",
		"status":           "active",
		"priority":         "low",
		"clientId":         foreignClient.ID.Hex(),
		"registrationDate": now,
		"filingDate":       now,
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/cases", body)
	req = testutil.WithUser(req, testutil.AdvocateUser())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)
	// The foreign client reads as nonexistent.
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCreate_MissingClient(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := map[string]any{
		"caseNumber": "X-2",
		"title":      "No Client",
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/cases", body)
	req = testutil.WithUser(req, testutil.AdvocateUser())

	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdate_KeepsClientReference(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi", "ravi@example.com", adv.ID)
	cs := fixtures.CreateCase(ctx, "UPD-1", "Original Title", client)

	now := time.Now().UTC().Format(time.RFC3339)
	body := map[string]any{
		"caseNumber":       "UPD-1",
		"title":            "Amended Title",
		"caseType":         "civil",
		"status":           "pending",
		"priority":         "medium",
		"clientId":         primitive.NewObjectID().Hex(), // must be ignored
		"registrationDate": now,
		"filingDate":       now,
	}
	req := testutil.NewJSONRequest(t, "PUT", "/api/cases/"+cs.ID.Hex(), body)
	req = testutil.WithChiURLParam(req, "id", cs.ID.Hex())
	req = testutil.WithUser(req, sessionFor(adv))

	rec := httptest.NewRecorder()
	handler.HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var updated models.Case
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Title != "Amended Title" || updated.Status != "pending" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.ClientID != client.ID {
		t.Errorf("clientId changed to %s; moving a case between clients is not supported", updated.ClientID.Hex())
	}
}

func TestHandleDelete(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	db := fixtures.DB()
	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi", "ravi@example.com", adv.ID)
	cs := fixtures.CreateCase(ctx, "DEL-1", "Doomed", client)

	req := testutil.NewRequest("DELETE", "/api/cases/"+cs.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", cs.ID.Hex())
	req = testutil.WithUser(req, sessionFor(adv))

	rec := httptest.NewRecorder()
	handler.HandleDelete(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	n, _ := db.Collection("cases").CountDocuments(ctx, bson.M{"_id": cs.ID})
	if n != 0 {
		t.Error("case still present after delete")
	}
	// The client survives its case.
	n, _ = db.Collection("clients").CountDocuments(ctx, bson.M{"_id": client.ID})
	if n != 1 {
		t.Error("client should not be touched by case delete")
	}
}

func TestHandleAddDocument_And_Remove(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi", "ravi@example.com", adv.ID)
	cs := fixtures.CreateCase(ctx, "DOC-1", "Document Matter", client)

	body := map[string]any{
		"name": "petition.pdf",
		"type": "application/pdf",
		"size": 2048,
		"url":  "https://files.example.com/petition.pdf",
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/cases/"+cs.ID.Hex()+"/documents", body)
	req = testutil.WithChiURLParam(req, "id", cs.ID.Hex())
	req = testutil.WithUser(req, sessionFor(adv))

	rec := httptest.NewRecorder()
	handler.HandleAddDocument(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var doc models.CaseDocument
	testutil.DecodeJSON(t, rec, &doc)
	if doc.UploadedBy != adv.ID {
		t.Errorf("uploadedBy = %s, want session user", doc.UploadedBy.Hex())
	}

	del := testutil.NewRequest("DELETE", "/api/cases/"+cs.ID.Hex()+"/documents/petition.pdf")
	del = testutil.WithChiURLParam(del, "id", cs.ID.Hex())
	del = testutil.WithChiURLParam(del, "name", "petition.pdf")
	del = testutil.WithUser(del, sessionFor(adv))

	rec2 := httptest.NewRecorder()
	handler.HandleRemoveDocument(rec2, del)
	if rec2.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d, want 204, body %s", rec2.Code, rec2.Body.String())
	}

	rec3 := httptest.NewRecorder()
	del2 := testutil.NewRequest("DELETE", "/api/cases/"+cs.ID.Hex()+"/documents/petition.pdf")
	del2 = testutil.WithChiURLParam(del2, "id", cs.ID.Hex())
	del2 = testutil.WithChiURLParam(del2, "name", "petition.pdf")
	del2 = testutil.WithUser(del2, sessionFor(adv))
	handler.HandleRemoveDocument(rec3, del2)
	if rec3.Code != http.StatusNotFound {
		t.Errorf("second remove status = %d, want 404", rec3.Code)
	}
}

func TestHandleAddNote_SetsAuthor(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi", "ravi@example.com", adv.ID)
	cs := fixtures.CreateCase(ctx, "NOTE-1", "Note Matter", client)

	body := map[string]any{
		"content":   "spoke with opposing counsel",
		"author":    primitive.NewObjectID().Hex(), // must be ignored
		"isPrivate": true,
	}
	req := testutil.NewJSONRequest(t, "POST", "/api/cases/"+cs.ID.Hex()+"/notes", body)
	req = testutil.WithChiURLParam(req, "id", cs.ID.Hex())
	req = testutil.WithUser(req, sessionFor(adv))

	rec := httptest.NewRecorder()
	handler.HandleAddNote(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var note models.CaseNote
	testutil.DecodeJSON(t, rec, &note)
	if note.Author != adv.ID {
		t.Errorf("author = %s, want session user", note.Author.Hex())
	}
	if !note.IsPrivate {
		t.Error("isPrivate flag lost")
	}
}

func TestHandleView_FiltersPrivateNotesForClients(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi", "ravi@example.com", adv.ID)
	cs := fixtures.CreateCase(ctx, "PRIV-1", "Private Notes Matter", client)

	if _, err := handler.Store.AddNote(ctx, cs.ID, adv.ID, models.CaseNote{Content: "public note", Author: adv.ID}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if _, err := handler.Store.AddNote(ctx, cs.ID, adv.ID, models.CaseNote{Content: "strategy", Author: adv.ID, IsPrivate: true}); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	// A client-role login in the same tenant sees only public notes.
	req := testutil.NewRequest("GET", "/api/cases/"+cs.ID.Hex())
	req = testutil.WithChiURLParam(req, "id", cs.ID.Hex())
	req = testutil.WithUser(req, testutil.TestUser{
		ID:         primitive.NewObjectID().Hex(),
		Roles:      []string{"client"},
		AdvocateID: adv.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	handler.HandleView(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got models.Case
	testutil.DecodeJSON(t, rec, &got)
	if len(got.Notes) != 1 || got.Notes[0].Content != "public note" {
		t.Errorf("client view notes = %+v, want only public", got.Notes)
	}

	// The advocate sees both.
	req2 := testutil.NewRequest("GET", "/api/cases/"+cs.ID.Hex())
	req2 = testutil.WithChiURLParam(req2, "id", cs.ID.Hex())
	req2 = testutil.WithUser(req2, sessionFor(adv))
	rec2 := httptest.NewRecorder()
	handler.HandleView(rec2, req2)
	var got2 models.Case
	testutil.DecodeJSON(t, rec2, &got2)
	if len(got2.Notes) != 2 {
		t.Errorf("advocate view notes = %d, want 2", len(got2.Notes))
	}
}

func TestHandleAddTask(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adv := fixtures.CreateAdvocate(ctx, "Owner", "owner@example.com")
	client := fixtures.CreateClient(ctx, "Ravi", "ravi@example.com", adv.ID)
	cs := fixtures.CreateCase(ctx, "TSK-1", "Task Matter", client)

	body := map[string]any{"title": "Draft reply"}
	req := testutil.NewJSONRequest(t, "POST", "/api/cases/"+cs.ID.Hex()+"/tasks", body)
	req = testutil.WithChiURLParam(req, "id", cs.ID.Hex())
	req = testutil.WithUser(req, sessionFor(adv))

	rec := httptest.NewRecorder()
	handler.HandleAddTask(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	var task models.CaseTask
	testutil.DecodeJSON(t, rec, &task)
	if task.Status != "pending" || task.Priority != "medium" {
		t.Errorf("defaults = %s/%s, want pending/medium", task.Status, task.Priority)
	}
}
