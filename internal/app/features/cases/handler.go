// internal/app/features/cases/handler.go
package cases

import (
	casestore "github.com/advocateworks/lexhub/internal/app/store/cases"
	clientstore "github.com/advocateworks/lexhub/internal/app/store/clients"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Cases. It also holds the
// client store because case creation snapshots client contact fields.
type Handler struct {
	DB      *mongo.Database
	Store   *casestore.Store
	Clients *clientstore.Store
	Log     *zap.Logger
}

// NewHandler constructs a new Cases handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Store:   casestore.New(db),
		Clients: clientstore.New(db),
		Log:     logger,
	}
}
