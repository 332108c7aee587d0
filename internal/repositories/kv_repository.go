package repositories

// KeyValueRepository defines durable string storage addressed by key.
type KeyValueRepository interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete is a no-op when the key is absent.
	Delete(key string) error
}
