// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvConfigFile points to a YAML file with the server configuration
	EnvConfigFile = "HYPERMEDIA_CONFIG"

	// EnvListenAddress is the address the server listens on
	EnvListenAddress = "HYPERMEDIA_LISTEN_ADDRESS"

	// EnvServerAddress is the URL of the server the CLI talks to
	EnvServerAddress = "HYPERMEDIA_SERVER_ADDRESS"

	// EnvBaseURL is the public base URL used in generated links
	EnvBaseURL = "HYPERMEDIA_BASE_URL"

	// EnvTypes is a comma separated list of hypermedia types to enable, e.g. "hal"
	EnvTypes = "HYPERMEDIA_TYPES"

	// EnvCurieName and EnvCurieHref configure the curie used for custom rels
	EnvCurieName = "HYPERMEDIA_CURIE_NAME"
	EnvCurieHref = "HYPERMEDIA_CURIE_HREF"

	// EnvDisablePluralization names collection rels "<item>List" instead of the plural
	EnvDisablePluralization = "HYPERMEDIA_DISABLE_PLURALIZATION"

	// EnvLogLevel sets the logrus level
	EnvLogLevel = "LOG_LEVEL"
)

// Database environment variable names
const (
	EnvDBHost     = "DB_HOST"
	EnvDBPort     = "DB_PORT"
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
	EnvDBName     = "DB_NAME"
	EnvDBSSLMode  = "DB_SSL_MODE"
)
