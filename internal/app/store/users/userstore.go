package userstore

import (
	"context"
	"time"

	"github.com/advocateworks/lexhub/internal/app/system/normalize"
	"github.com/advocateworks/lexhub/internal/domain/errs"
	"github.com/advocateworks/lexhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// ErrDuplicateEmail is returned when attempting to create a user with an
// email that already exists.
var ErrDuplicateEmail = errs.Conflict("a user with this email already exists")

// Create inserts a new user after normalizing and validating fields.
// Accounts are never created with a client-supplied advocateId; tenant
// linkage for subordinate users is set by invitation or migration.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)

	if u.Email == "" {
		return models.User{}, errs.Validation("email is required")
	}
	if len(u.Roles) == 0 {
		return models.User{}, errs.Validation("at least one role is required")
	}
	for _, role := range u.Roles {
		if !models.ValidRole(role) {
			return models.User{}, errs.Validation("unknown role %q", role)
		}
	}

	// A main advocate is a tenant root and never points at another
	// advocate.
	if u.IsMainAdvocate {
		u.AdvocateID = nil
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}
	return &u, nil
}

// GetByOAuth looks up a user by OAuth identity.
func (s *Store) GetByOAuth(ctx context.Context, provider, subject string) (*models.User, error) {
	var u models.User
	filter := bson.M{"oauthProvider": provider, "oauthSubject": subject}
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile updates name and email.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email string) error {
	name = normalize.Name(name)
	email = normalize.Email(email)
	if name == "" {
		return errs.Validation("name is required")
	}
	if email == "" {
		return errs.Validation("email is required")
	}

	set := bson.M{
		"name":      name,
		"nameCI":    text.Fold(name),
		"email":     email,
		"updatedAt": time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

// SetPassword stores a new password hash. Used both for password changes
// and for OAuth-only accounts setting a password for the first time.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"passwordHash": hash,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

// LinkOAuth attaches an OAuth identity to an existing account.
func (s *Store) LinkOAuth(ctx context.Context, id primitive.ObjectID, provider, subject string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"oauthProvider": provider,
		"oauthSubject":  subject,
		"updatedAt":     time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

// SetSubscription replaces the informational subscription sub-record.
func (s *Store) SetSubscription(ctx context.Context, id primitive.ObjectID, sub models.Subscription) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"subscription": sub,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}
