// Package migrate repairs pre-tenancy records: advocates promoted to
// main advocates, cases and client users backfilled with the advocateId
// their creator resolves to. It runs out of band as its own binary and
// is safe to run repeatedly; a second run finds nothing left to fix.
package migrate

import (
	"context"
	"fmt"

	"github.com/advocateworks/lexhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Report summarizes one migration run. Unresolved ids are records the
// migration refused to guess at; they need manual assignment.
type Report struct {
	AdvocatesPromoted     int64
	CasesResolved         int64
	CasesUnresolved       []primitive.ObjectID
	ClientUsersResolved   int64
	ClientUsersUnresolved []primitive.ObjectID
}

// Clean reports whether the run left no unresolved records behind.
func (r Report) Clean() bool {
	return len(r.CasesUnresolved) == 0 && len(r.ClientUsersUnresolved) == 0
}

// Run executes the three repair passes in order. Passes are ordered so
// later passes can rely on earlier ones: cases need promoted advocates,
// client users need backfilled cases.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger) (Report, error) {
	var rep Report

	promoted, err := promoteAdvocates(ctx, db)
	if err != nil {
		return rep, fmt.Errorf("promote advocates: %w", err)
	}
	rep.AdvocatesPromoted = promoted
	log.Info("migration: advocates promoted", zap.Int64("count", promoted))

	if err := backfillCases(ctx, db, log, &rep); err != nil {
		return rep, fmt.Errorf("backfill cases: %w", err)
	}
	log.Info("migration: cases backfilled",
		zap.Int64("resolved", rep.CasesResolved),
		zap.Int("unresolved", len(rep.CasesUnresolved)))

	if err := backfillClientUsers(ctx, db, log, &rep); err != nil {
		return rep, fmt.Errorf("backfill client users: %w", err)
	}
	log.Info("migration: client users backfilled",
		zap.Int64("resolved", rep.ClientUsersResolved),
		zap.Int("unresolved", len(rep.ClientUsersUnresolved)))

	return rep, nil
}

// promoteAdvocates marks every advocate-role user as a main advocate and
// clears any stale advocateId pointer. Already-promoted users match the
// filter but the update is a no-op for them, so UpdateMany's modified
// count stays accurate for reruns.
func promoteAdvocates(ctx context.Context, db *mongo.Database) (int64, error) {
	res, err := db.Collection("users").UpdateMany(ctx,
		bson.M{
			"roles": models.RoleAdvocate,
			"$or": bson.A{
				bson.M{"isMainAdvocate": bson.M{"$ne": true}},
				bson.M{"advocateId": bson.M{"$exists": true}},
			},
		},
		bson.M{
			"$set":   bson.M{"isMainAdvocate": true},
			"$unset": bson.M{"advocateId": ""},
		})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// backfillCases assigns advocateId to legacy cases via the user who
// created them. Only a main advocate's id is trusted; anything else is
// reported rather than guessed.
func backfillCases(ctx context.Context, db *mongo.Database, log *zap.Logger, rep *Report) error {
	cases := db.Collection("cases")
	users := db.Collection("users")

	filter := bson.M{"$or": bson.A{
		bson.M{"advocateId": bson.M{"$exists": false}},
		bson.M{"advocateId": primitive.NilObjectID},
	}}
	cur, err := cases.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"_id": 1, "createdBy": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	// Creators repeat across cases, so resolve each one once.
	resolved := make(map[primitive.ObjectID]primitive.ObjectID)

	for cur.Next(ctx) {
		var c struct {
			ID        primitive.ObjectID `bson:"_id"`
			CreatedBy primitive.ObjectID `bson:"createdBy"`
		}
		if err := cur.Decode(&c); err != nil {
			return err
		}

		advocateID, ok := resolved[c.CreatedBy]
		if !ok && !c.CreatedBy.IsZero() {
			var creator models.User
			err := users.FindOne(ctx, bson.M{"_id": c.CreatedBy}).Decode(&creator)
			switch {
			case err == mongo.ErrNoDocuments:
				// fall through unresolved
			case err != nil:
				return err
			default:
				if id, hasTenant := creator.EffectiveAdvocateID(); hasTenant {
					advocateID = id
					resolved[c.CreatedBy] = id
					ok = true
				}
			}
		}

		if !ok || advocateID.IsZero() {
			log.Warn("migration: case has no resolvable advocate",
				zap.String("case_id", c.ID.Hex()),
				zap.String("created_by", c.CreatedBy.Hex()))
			rep.CasesUnresolved = append(rep.CasesUnresolved, c.ID)
			continue
		}

		if _, err := cases.UpdateByID(ctx, c.ID,
			bson.M{"$set": bson.M{"advocateId": advocateID}}); err != nil {
			return err
		}
		rep.CasesResolved++
	}
	return cur.Err()
}

// backfillClientUsers assigns advocateId to client-role users by finding
// any case that names them as its client and already carries a tenant.
// Pass order matters: backfillCases runs first, so a client whose cases
// were just repaired resolves here in the same run.
func backfillClientUsers(ctx context.Context, db *mongo.Database, log *zap.Logger, rep *Report) error {
	cases := db.Collection("cases")
	users := db.Collection("users")

	filter := bson.M{
		"roles":          models.RoleClient,
		"isMainAdvocate": bson.M{"$ne": true},
		"$or": bson.A{
			bson.M{"advocateId": bson.M{"$exists": false}},
			bson.M{"advocateId": nil},
		},
	}
	cur, err := users.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&u); err != nil {
			return err
		}

		var c struct {
			AdvocateID primitive.ObjectID `bson:"advocateId"`
		}
		err := cases.FindOne(ctx,
			bson.M{
				"clientId":   u.ID,
				"advocateId": bson.M{"$exists": true, "$ne": primitive.NilObjectID},
			},
			options.FindOne().SetProjection(bson.M{"advocateId": 1})).Decode(&c)
		switch {
		case err == mongo.ErrNoDocuments:
			log.Warn("migration: client user has no case to propagate from",
				zap.String("user_id", u.ID.Hex()))
			rep.ClientUsersUnresolved = append(rep.ClientUsersUnresolved, u.ID)
			continue
		case err != nil:
			return err
		}

		if _, err := users.UpdateByID(ctx, u.ID,
			bson.M{"$set": bson.M{"advocateId": c.AdvocateID}}); err != nil {
			return err
		}
		rep.ClientUsersResolved++
	}
	return cur.Err()
}
