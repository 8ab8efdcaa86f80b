package config // package config loads console configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // loads a .env file into the environment when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only the backend base URL is required; every
// other value has a sensible default so the console works out of the box
// against a local server.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	APIBaseURL      string // base URL of the booking backend
	HTTPTimeoutSec  int    // per-request timeout in seconds; 0 relies on transport defaults
	SessionBackend  string // "file" or "redis"
	SessionFile     string // path of the file-backed session store
	IdempotencyKeys bool   // attach Idempotency-Key headers to booking transitions
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is merged in first without
// overriding already-exported variables.  The required base URL is enforced
// by must() and a missing value causes the program to exit with a fatal log
// message.
func Load() Config {
	// Ignore the error: a missing .env file simply means everything must
	// come from the real environment.
	_ = godotenv.Load()

	return Config{
		Env:             getenv("APP_ENV", "dev"),
		APIBaseURL:      must("API_BASE_URL"),
		HTTPTimeoutSec:  getenvInt("HTTP_TIMEOUT_SEC", 0),
		SessionBackend:  getenv("SESSION_BACKEND", "file"),
		SessionFile:     getenv("SESSION_FILE", defaultSessionFile()),
		IdempotencyKeys: getenvBool("IDEMPOTENCY_KEYS", true),
	}
}

// defaultSessionFile resolves the session file under the user's home
// directory, falling back to the working directory when the home cannot
// be determined.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ticketdesk-session.json"
	}
	return home + "/.ticketdesk/session.json"
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an optional environment variable or the
// provided default when it is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is like getenv() but converts the retrieved string into an
// integer.  An unparsable value is a configuration mistake and aborts.
func getenvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenvBool accepts the usual truthy spellings ("1", "t", "true", ...).
func getenvBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("invalid bool for %s: %q", key, s)
	}
	return b
}
