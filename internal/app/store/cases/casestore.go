package casestore

import (
	"context"
	"time"

	"github.com/advocateworks/lexhub/internal/app/system/htmlsanitize"
	"github.com/advocateworks/lexhub/internal/app/system/normalize"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cases")}
}

// ErrDuplicateCaseNumber is returned when the advocate already has a
// case with this number.
var ErrDuplicateCaseNumber = errs.Conflict("a case with this case number already exists")

// Create inserts a new case. The caller resolves the client beforehand
// and passes the denormalized clientName/Email/Phone snapshot; those
// copies are deliberately never re-synced afterwards. PendingAmount is
// derived here regardless of what the caller sent.
func (s *Store) Create(ctx context.Context, cs models.Case) (models.Case, error) {
	cs.ID = primitive.NewObjectID()
	cs.CaseNumber = normalize.Name(cs.CaseNumber)
	cs.CaseNumberCI = text.Fold(cs.CaseNumber)
	cs.Title = normalize.Name(cs.Title)
	cs.TitleCI = text.Fold(cs.Title)
	cs.ClientNameCI = text.Fold(cs.ClientName)
	cs.ClientEmail = normalize.Email(cs.ClientEmail)

	if err := validate(cs); err != nil {
		return models.Case{}, err
	}

	cs.Fees = cs.Fees.Derived()
	if cs.Year == 0 {
		cs.Year = cs.RegistrationDate.Year()
	}
	if cs.Documents == nil {
		cs.Documents = []models.CaseDocument{}
	}
	if cs.Notes == nil {
		cs.Notes = []models.CaseNote{}
	}
	if cs.Tasks == nil {
		cs.Tasks = []models.CaseTask{}
	}

	now := time.Now().UTC()
	cs.CreatedAt = now
	cs.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cs); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Case{}, ErrDuplicateCaseNumber
		}
		return models.Case{}, err
	}
	return cs, nil
}

func validate(cs models.Case) error {
	switch {
	case cs.CaseNumber == "":
		return errs.Validation("caseNumber is required")
	case cs.Title == "":
		return errs.Validation("title is required")
	case cs.ClientID.IsZero():
		return errs.Validation("clientId is required")
	case cs.AdvocateID.IsZero():
		return errs.Validation("advocateId is required")
	case cs.RegistrationDate.IsZero():
		return errs.Validation("registrationDate is required")
	case cs.FilingDate.IsZero():
		return errs.Validation("filingDate is required")
	}
	if !models.ValidCaseType(cs.CaseType) {
		return errs.Validation("unknown caseType %q", cs.CaseType)
	}
	if !models.ValidCaseStatus(cs.Status) {
		return errs.Validation("unknown status %q", cs.Status)
	}
	if !models.ValidCasePriority(cs.Priority) {
		return errs.Validation("unknown priority %q", cs.Priority)
	}
	// Stage is validated only when set; the edit form leaves it free.
	if cs.Stage != "" && !models.ValidCaseStage(cs.Stage) {
		return errs.Validation("unknown stage %q", cs.Stage)
	}
	return nil
}

// GetByID loads a case within the advocate's tenant. A case owned by a
// different advocate reads as not found.
func (s *Store) GetByID(ctx context.Context, id, advocateID primitive.ObjectID) (models.Case, error) {
	var cs models.Case
	err := s.c.FindOne(ctx, bson.M{"_id": id, "advocateId": advocateID}).Decode(&cs)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Case{}, errs.NotFound("case not found")
		}
		return models.Case{}, err
	}
	return cs, nil
}

// Filters narrows a case listing. All present filters are ANDed.
type Filters struct {
	Search      string // folded prefix match on case number, title, or client name
	Statuses    []string
	Priorities  []string
	CaseTypes   []string
	HearingFrom *time.Time
	HearingTo   *time.Time
}

func (f Filters) build(advocateID primitive.ObjectID) bson.M {
	filter := bson.M{"advocateId": advocateID}

	if f.Search != "" {
		fq := text.Fold(f.Search)
		hi := fq + "\uffff"
		filter["$or"] = []bson.M{
			{"caseNumberCI": bson.M{"$gte": fq, "$lt": hi}},
			{"titleCI": bson.M{"$gte": fq, "$lt": hi}},
			{"clientNameCI": bson.M{"$gte": fq, "$lt": hi}},
		}
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	if len(f.Priorities) > 0 {
		filter["priority"] = bson.M{"$in": f.Priorities}
	}
	if len(f.CaseTypes) > 0 {
		filter["caseType"] = bson.M{"$in": f.CaseTypes}
	}
	if f.HearingFrom != nil || f.HearingTo != nil {
		rng := bson.M{}
		if f.HearingFrom != nil {
			rng["$gte"] = *f.HearingFrom
		}
		if f.HearingTo != nil {
			rng["$lte"] = *f.HearingTo
		}
		filter["nextHearingDate"] = rng
	}
	return filter
}

// List returns one page of the advocate's cases plus the total count.
func (s *Store) List(ctx context.Context, advocateID primitive.ObjectID, f Filters, skip, limit int64) ([]models.Case, int64, error) {
	filter := f.build(advocateID)

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	find := options.Find().
		SetSort(bson.D{{Key: "caseNumber", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var cases []models.Case
	if err := cur.All(ctx, &cases); err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// Update replaces the case's scalar fields with the submitted
// representation (whole-document edit-form semantics, last writer wins)
// and re-derives fees.pendingAmount. Nil embedded arrays mean "no
// change" — the stored documents/notes/tasks stay untouched, never
// cleared. The denormalized client snapshot, ownership fields, and
// CreatedAt are not modifiable here.
func (s *Store) Update(ctx context.Context, id, advocateID primitive.ObjectID, cs models.Case) error {
	cs.CaseNumber = normalize.Name(cs.CaseNumber)
	cs.Title = normalize.Name(cs.Title)
	cs.AdvocateID = advocateID
	if cs.ClientID.IsZero() {
		// Replace semantics still require the reference; the form
		// round-trips it.
		return errs.Validation("clientId is required")
	}
	if err := validate(cs); err != nil {
		return err
	}

	set := bson.M{
		"caseNumber":       cs.CaseNumber,
		"caseNumberCI":     text.Fold(cs.CaseNumber),
		"title":            cs.Title,
		"titleCI":          text.Fold(cs.Title),
		"description":      cs.Description,
		"caseType":         cs.CaseType,
		"status":           cs.Status,
		"priority":         cs.Priority,
		"stage":            cs.Stage,
		"assignedTo":       cs.AssignedTo,
		"fees":             cs.Fees.Derived(),
		"registrationDate": cs.RegistrationDate,
		"filingDate":       cs.FilingDate,
		"previousDate":     cs.PreviousDate,
		"nextHearingDate":  cs.NextHearingDate,
		"deadlineDate":     cs.DeadlineDate,
		"closedDate":       cs.ClosedDate,
		"year":             cs.Year,
		"updatedAt":        time.Now().UTC(),
	}
	if cs.Documents != nil {
		set["documents"] = cs.Documents
	}
	if cs.Notes != nil {
		// Replaced notes pass through the same UGC sanitizer AddNote
		// applies; the edit form must not be a way around it.
		for i := range cs.Notes {
			cs.Notes[i].Content = htmlsanitize.Sanitize(cs.Notes[i].Content)
		}
		set["notes"] = cs.Notes
	}
	if cs.Tasks != nil {
		set["tasks"] = cs.Tasks
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "advocateId": advocateID}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateCaseNumber
		}
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("case not found")
	}
	return nil
}

// Delete removes a single case.
func (s *Store) Delete(ctx context.Context, id, advocateID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "advocateId": advocateID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.NotFound("case not found")
	}
	return nil
}

// DeleteByClient removes every case referencing the client. Used by the
// client-delete cascade. Returns the number of cases removed.
func (s *Store) DeleteByClient(ctx context.Context, clientID, advocateID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"clientId": clientID, "advocateId": advocateID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByClient returns how many cases reference the client.
func (s *Store) CountByClient(ctx context.Context, clientID, advocateID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"clientId": clientID, "advocateId": advocateID})
}

// ClientAggregates mirrors the denormalized counters kept on the client
// record.
type ClientAggregates struct {
	TotalCases  int     `bson:"totalCases"`
	ActiveCases int     `bson:"activeCases"`
	ClosedCases int     `bson:"closedCases"`
	TotalFees   float64 `bson:"totalFees"`
	PaidFees    float64 `bson:"paidFees"`
	PendingFees float64 `bson:"pendingFees"`
}

// AggregateForClient computes the client's case counters and fee totals
// from the cases collection.
func (s *Store) AggregateForClient(ctx context.Context, clientID, advocateID primitive.ObjectID) (ClientAggregates, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"clientId": clientID, "advocateId": advocateID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalCases": bson.M{"$sum": 1},
			"activeCases": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CaseActive}}, 1, 0},
			}},
			"closedCases": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.CaseClosed}}, 1, 0},
			}},
			"totalFees":   bson.M{"$sum": "$fees.totalAmount"},
			"paidFees":    bson.M{"$sum": "$fees.paidAmount"},
			"pendingFees": bson.M{"$sum": "$fees.pendingAmount"},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return ClientAggregates{}, err
	}
	defer cur.Close(ctx)

	var rows []ClientAggregates
	if err := cur.All(ctx, &rows); err != nil {
		return ClientAggregates{}, err
	}
	if len(rows) == 0 {
		return ClientAggregates{}, nil
	}
	return rows[0], nil
}
