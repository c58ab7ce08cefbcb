// Package oauthstate persists single-use OAuth state tokens. A TTL
// index on expiresAt reaps abandoned flows server-side.
package oauthstate

import (
	"context"
	"time"

	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const ttl = 10 * time.Minute

type record struct {
	State     string    `bson:"state"`
	ReturnTo  string    `bson:"returnTo,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("oauth_states")}
}

// Issue creates and stores a fresh state token for an authorization
// redirect. returnTo is an optional in-app path to resume after the
// callback.
func (s *Store) Issue(ctx context.Context, returnTo string) (string, error) {
	now := time.Now().UTC()
	rec := record{
		State:     uuid.NewString(),
		ReturnTo:  returnTo,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return "", err
	}
	return rec.State, nil
}

// Consume validates and deletes a state token in one step, so a token
// can never be replayed. Returns the stored returnTo path.
func (s *Store) Consume(ctx context.Context, state string) (string, error) {
	var rec record
	err := s.c.FindOneAndDelete(ctx, bson.M{"state": state}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", errs.Validation("unknown or already used state")
		}
		return "", err
	}
	// TTL reaping runs on a background cadence, so an expired record may
	// still be present.
	if time.Now().UTC().After(rec.ExpiresAt) {
		return "", errs.Validation("state expired")
	}
	return rec.ReturnTo, nil
}
