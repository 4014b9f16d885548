package contract

// KeyValueStore is durable client-side storage: plain string entries, no
// schema versioning.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}
