// internal/app/features/login/handler.go
package login

import (
	userstore "github.com/advocateworks/lexhub/internal/app/store/users"
	"github.com/advocateworks/lexhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler implements password signup, login, and logout.
type Handler struct {
	DB         *mongo.Database
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler constructs a login handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		Log:        logger,
	}
}
