package storage

// Storer provides storage services for persisted consensus state
type Storer interface {
	Put(key []byte, data []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) error
	Remove(key []byte) error
	Close() error
	IsInterfaceNil() bool
}
