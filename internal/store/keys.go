package store

const (
	// KeyPrefix namespaces every key written by bankfinder
	KeyPrefix = "bankfinder:"
	// KeyFavorites holds the JSON array of favorites
	KeyFavorites = KeyPrefix + "favorites"
	// KeyTheme holds the literal "light" or "dark"
	KeyTheme = KeyPrefix + "theme"

	lockPrefix = KeyPrefix + "lock:"
)

// LockName returns the lock guarding writes to key
func LockName(key string) string {
	return lockPrefix + key
}
