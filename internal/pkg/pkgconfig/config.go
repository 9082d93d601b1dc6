package pkgconfig

// Config is the read-only view of application settings.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetArray(key string) []string
	Close() error
}
