// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Index creation is idempotent for
identical specs, so repeated startups are safe. Errors are aggregated so
every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureClients(ctx, db); err != nil {
		problems = append(problems, "clients: "+err.Error())
	}
	if err := ensureCases(ctx, db); err != nil {
		problems = append(problems, "cases: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, idx []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, idx)
	return err
}

// ensureUsers: account email is unique across the whole system; OAuth
// identities resolve by (provider, subject).
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "oauthProvider", Value: 1}, {Key: "oauthSubject", Value: 1}},
			Options: options.Index().SetName("oauth_identity").
				SetPartialFilterExpression(bson.M{"oauthSubject": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}},
			Options: options.Index().SetName("by_advocate"),
		},
	})
}

// ensureClients: email is unique per tenant, not globally — two
// advocates may represent the same person.
func ensureClients(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "clients", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_tenant_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "nameCI", Value: 1}},
			Options: options.Index().SetName("tenant_name"),
		},
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("tenant_created"),
		},
	})
}

// ensureCases: case numbers are unique per tenant; clientId supports the
// cascade delete and aggregate recompute paths.
func ensureCases(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "cases", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "caseNumber", Value: 1}},
			Options: options.Index().SetName("uniq_tenant_case_number").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}},
			Options: options.Index().SetName("by_client"),
		},
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "nextHearingDate", Value: 1}},
			Options: options.Index().SetName("tenant_hearing"),
		},
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "titleCI", Value: 1}},
			Options: options.Index().SetName("tenant_title"),
		},
		{
			Keys:    bson.D{{Key: "advocateId", Value: 1}, {Key: "caseNumberCI", Value: 1}},
			Options: options.Index().SetName("tenant_case_number_ci"),
		},
	})
}

// ensureOAuthStates: states are single-use and expire server-side.
func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "oauth_states", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetName("uniq_state").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetName("ttl_expiry").SetExpireAfterSeconds(0),
		},
	})
}

// EnsureAllWithRetry retries transient failures during startup; fresh
// deployments can race the first connection.
func EnsureAllWithRetry(ctx context.Context, db *mongo.Database, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = EnsureAll(ctx, db); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return err
}
