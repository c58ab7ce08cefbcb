// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging level, CORS); AppConfig
// is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: lexhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration. Leaving both blank disables the
	// /auth/google routes; password login still works.
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is the externally visible origin, used to build the OAuth
	// callback URL.
	BaseURL string
}
