// Package auth manages cookie sessions and the per-request user context.
//
// The tenant id is resolved exactly once, at sign-in: a main advocate
// scopes to their own id, a subordinate user to their stored advocateId.
// Every downstream handler takes the resolved id from the session as an
// opaque scoping token and never trusts a client-supplied tenant id.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/advocateworks/lexhub/internal/domain/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	isAuthKey     = "is_authenticated"
	userIDKey     = "user_id"
	userNameKey   = "user_name"
	userEmailKey  = "user_email"
	userRolesKey  = "user_roles"
	advocateIDKey = "advocate_id"
)

// SessionUser is what we cache in the session and inject into
// r.Context().
type SessionUser struct {
	ID         string
	Name       string
	Email      string
	Roles      []string
	AdvocateID string // resolved tenant id (hex)
}

// HasRole reports whether the session user carries the given role.
func (u *SessionUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserObjectID returns the user's id as an ObjectID.
func (u *SessionUser) UserObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(u.ID)
}

// AdvocateObjectID returns the resolved tenant id as an ObjectID.
func (u *SessionUser) AdvocateObjectID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(u.AdvocateID)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user from the request context.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user directly into the request context,
// bypassing the session middleware. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// ErrNoTenant is returned at sign-in when a user cannot be resolved to a
// main advocate's tenant (a legacy record the migration has not fixed).
var ErrNoTenant = errors.New("user has no resolvable advocate tenant")

// SessionManager issues and reads cookie sessions.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-session manager. An empty key gets a
// random one, which invalidates sessions on restart; fine for dev, wrong
// for production, so it is logged loudly.
func NewSessionManager(key, name, domain string, secure bool, log *zap.Logger) (*SessionManager, error) {
	if name == "" {
		return nil, errors.New("session cookie name is required")
	}
	if key == "" {
		key = string(securecookie.GenerateRandomKey(32))
		log.Warn("no session key configured; generated a random one (sessions reset on restart)")
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, name: name, log: log}, nil
}

// SignIn resolves the user's tenant and writes the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *models.User) error {
	advocateID, ok := u.EffectiveAdvocateID()
	if !ok {
		return ErrNoTenant
	}

	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = u.ID.Hex()
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRolesKey] = strings.Join(u.Roles, ",")
	sess.Values[advocateIDKey] = advocateID.Hex()
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are signed in.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, m.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:         getString(sess, userIDKey),
				Name:       getString(sess, userNameKey),
				Email:      getString(sess, userEmailKey),
				AdvocateID: getString(sess, advocateIDKey),
			}
			if roles := getString(sess, userRolesKey); roles != "" {
				u.Roles = strings.Split(roles, ",")
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects unauthenticated requests with a JSON 401.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests from users lacking all of the allowed
// roles with a JSON 403. It implies RequireSignedIn.
func (m *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range u.Roles {
				if _, ok := set[strings.ToLower(role)]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "insufficient role")
		})
	}
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}

// writeJSONError is duplicated from webjson to keep auth free of app
// dependencies beyond models.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
