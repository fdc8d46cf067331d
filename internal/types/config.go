package types

type RunMode string

const (
	// ModeLocal runs the API server and provisions the plugin on start
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running just the API server
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// CacheProvider selects the backing store for the settings cache
type CacheProvider string

const (
	CacheProviderMemory CacheProvider = "memory"
	CacheProviderRedis  CacheProvider = "redis"
)
