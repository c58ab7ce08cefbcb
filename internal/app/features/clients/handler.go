// internal/app/features/clients/handler.go
package clients

import (
	clientstore "github.com/advocateworks/lexhub/internal/app/store/clients"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Clients.
type Handler struct {
	DB    *mongo.Database
	Store *clientstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a new Clients handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: clientstore.New(db),
		Log:   logger,
	}
}
