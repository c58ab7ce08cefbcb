package clientstore

import (
	"context"
	"fmt"
	"time"

	casestore "github.com/advocateworks/lexhub/internal/app/store/cases"
	"github.com/advocateworks/lexhub/internal/app/system/normalize"
	"github.com/advocateworks/lexhub/internal/app/system/txn"
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
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("clients")}
}

// ErrDuplicateEmail is returned when the advocate already has a client
// with this email.
var ErrDuplicateEmail = errs.Conflict("a client with this email already exists")

// Create inserts a new client. AdvocateID must already be set from the
// session, never from request input.
func (s *Store) Create(ctx context.Context, c models.Client) (models.Client, error) {
	c.ID = primitive.NewObjectID()
	c.Name = normalize.Name(c.Name)
	c.NameCI = text.Fold(c.Name)
	c.Email = normalize.Email(c.Email)
	c.Phone = normalize.Phone(c.Phone)

	if err := validate(c); err != nil {
		return models.Client{}, err
	}
	if c.ClientType == "" {
		c.ClientType = "individual"
	}
	if c.Status == "" {
		c.Status = models.ClientActive
	}
	if !models.ValidClientType(c.ClientType) {
		return models.Client{}, errs.Validation("unknown clientType %q", c.ClientType)
	}
	if !models.ValidClientStatus(c.Status) {
		return models.Client{}, errs.Validation("unknown status %q", c.Status)
	}

	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Client{}, ErrDuplicateEmail
		}
		return models.Client{}, err
	}
	return c, nil
}

func validate(c models.Client) error {
	switch {
	case c.Name == "":
		return errs.Validation("name is required")
	case c.Email == "":
		return errs.Validation("email is required")
	case c.Phone == "":
		return errs.Validation("phone is required")
	case c.Address == "":
		return errs.Validation("address is required")
	case c.EmergencyContact == "":
		return errs.Validation("emergencyContact is required")
	case c.AdvocateID.IsZero():
		return errs.Validation("advocateId is required")
	}
	return nil
}

// GetByID loads a client within the advocate's tenant. A client owned by
// a different advocate is reported as not found, indistinguishable from
// a nonexistent id.
func (s *Store) GetByID(ctx context.Context, id, advocateID primitive.ObjectID) (models.Client, error) {
	var c models.Client
	err := s.c.FindOne(ctx, bson.M{"_id": id, "advocateId": advocateID}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Client{}, errs.NotFound("client not found")
		}
		return models.Client{}, err
	}
	return c, nil
}

// Filters narrows a client listing. All present filters are ANDed.
type Filters struct {
	Search      string // matches folded name, email, or phone prefix
	Statuses    []string
	ClientTypes []string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (f Filters) build(advocateID primitive.ObjectID) bson.M {
	filter := bson.M{"advocateId": advocateID}

	if f.Search != "" {
		fq := text.Fold(f.Search)
		hi := fq + "\uffff"
		filter["$or"] = []bson.M{
			{"nameCI": bson.M{"$gte": fq, "$lt": hi}},
			{"email": bson.M{"$gte": fq, "$lt": hi}},
			{"phone": bson.M{"$gte": f.Search, "$lt": f.Search + "\uffff"}},
		}
	}
	if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	if len(f.ClientTypes) > 0 {
		filter["clientType"] = bson.M{"$in": f.ClientTypes}
	}
	if f.CreatedFrom != nil || f.CreatedTo != nil {
		rng := bson.M{}
		if f.CreatedFrom != nil {
			rng["$gte"] = *f.CreatedFrom
		}
		if f.CreatedTo != nil {
			rng["$lte"] = *f.CreatedTo
		}
		filter["createdAt"] = rng
	}
	return filter
}

// List returns one page of the advocate's clients plus the total count
// across all pages. An empty page is not an error.
func (s *Store) List(ctx context.Context, advocateID primitive.ObjectID, f Filters, skip, limit int64) ([]models.Client, int64, error) {
	filter := f.build(advocateID)

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	find := options.Find().
		SetSort(bson.D{{Key: "nameCI", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var clients []models.Client
	if err := cur.All(ctx, &clients); err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// Update replaces the client's mutable fields with the submitted
// representation. The edit form round-trips the whole object, so this is
// whole-document replace semantics: last writer wins, no field merging.
// AdvocateID, CreatedBy, and CreatedAt are never touched.
func (s *Store) Update(ctx context.Context, id, advocateID primitive.ObjectID, c models.Client) error {
	c.Name = normalize.Name(c.Name)
	c.Email = normalize.Email(c.Email)
	c.Phone = normalize.Phone(c.Phone)
	c.AdvocateID = advocateID
	if err := validate(c); err != nil {
		return err
	}
	if !models.ValidClientType(c.ClientType) {
		return errs.Validation("unknown clientType %q", c.ClientType)
	}
	if !models.ValidClientStatus(c.Status) {
		return errs.Validation("unknown status %q", c.Status)
	}

	// Aggregate counters are excluded: they change only through
	// RecomputeAggregates, never through the edit form.
	set := bson.M{
		"name":             c.Name,
		"nameCI":           text.Fold(c.Name),
		"email":            c.Email,
		"phone":            c.Phone,
		"address":          c.Address,
		"emergencyContact": c.EmergencyContact,
		"clientType":       c.ClientType,
		"status":           c.Status,
		"assignedTo":       c.AssignedTo,
		"updatedAt":        time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "advocateId": advocateID}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("client not found")
	}
	return nil
}

// CascadeResult reports what a client deletion removed.
type CascadeResult struct {
	CasesDeleted int64 `json:"casesDeleted"`
}

// Delete removes a client and every case referencing it in one logical
// operation. Cases go first so a partial failure can never leave a case
// without its client; if the client removal then fails, the error is
// tagged CascadeIncomplete and must be surfaced, never swallowed. On
// replica-set deployments the whole cascade runs in a transaction.
func (s *Store) Delete(ctx context.Context, id, advocateID primitive.ObjectID) (CascadeResult, error) {
	// Tenant check up front: deleting another advocate's client reads as
	// not found.
	if _, err := s.GetByID(ctx, id, advocateID); err != nil {
		return CascadeResult{}, err
	}

	var result CascadeResult
	usedTxn, err := txn.WithTransaction(ctx, s.db.Client(), func(ctx context.Context) error {
		res, err := s.db.Collection("cases").DeleteMany(ctx, bson.M{
			"clientId":   id,
			"advocateId": advocateID,
		})
		if err != nil {
			return fmt.Errorf("delete cases: %w", err)
		}
		result.CasesDeleted = res.DeletedCount

		if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "advocateId": advocateID}); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
	if err != nil {
		if !usedTxn && result.CasesDeleted > 0 {
			return result, errs.CascadeIncomplete(
				"client deletion did not complete; cases were removed but the client record remains", err)
		}
		return CascadeResult{}, err
	}
	return result, nil
}

// RecomputeAggregates rebuilds the denormalized case counters and fee
// totals from the cases collection. These counters are not maintained
// transactionally on case create/delete — this is the repair path.
func (s *Store) RecomputeAggregates(ctx context.Context, id, advocateID primitive.ObjectID) (models.Client, error) {
	if _, err := s.GetByID(ctx, id, advocateID); err != nil {
		return models.Client{}, err
	}

	agg, err := casestore.New(s.db).AggregateForClient(ctx, id, advocateID)
	if err != nil {
		return models.Client{}, err
	}

	set := bson.M{
		"totalCases":  agg.TotalCases,
		"activeCases": agg.ActiveCases,
		"closedCases": agg.ClosedCases,
		"totalFees":   agg.TotalFees,
		"paidFees":    agg.PaidFees,
		"pendingFees": agg.PendingFees,
		"updatedAt":   time.Now().UTC(),
	}
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "advocateId": advocateID}, bson.M{"$set": set}); err != nil {
		return models.Client{}, err
	}
	return s.GetByID(ctx, id, advocateID)
}
