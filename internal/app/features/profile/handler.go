// internal/app/features/profile/handler.go
package profile

import (
	userstore "github.com/advocateworks/lexhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own account.
type Handler struct {
	DB    *mongo.Database
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a profile handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Users: userstore.New(db),
		Log:   logger,
	}
}
