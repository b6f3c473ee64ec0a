// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging level and request body limits. AppConfig carries what is
// specific to MutuHub: the MongoDB connection, session cookies, the unit
// hierarchy mode, the bootstrap superadmin and handler timeouts.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Upper bound on pooled connections
	MongoMinPoolSize uint64 // Connections kept warm

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: mutuhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Unit hierarchy: strict enforces rank order, cycles and leader subtrees.
	UnitHierarchyStrict bool

	// SuperAdmin bootstrap (skipped when login id is blank)
	SuperAdminLoginID  string
	SuperAdminPassword string

	// Handler timeouts (zero keeps the package defaults)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	LoginRateLimit int  // Login attempts per IP per minute
	MetricsEnabled bool // Expose Prometheus metrics at /metrics
}
