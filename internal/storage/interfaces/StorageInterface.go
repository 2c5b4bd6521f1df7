package interfaces

// KeyValueStorage is the durable namespaced string store every service
// persists into. Set must be durable by the time it returns.
type KeyValueStorage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() []string
	Close()
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
