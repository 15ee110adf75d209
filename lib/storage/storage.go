package storage

type IterItem struct {
	N     int64
	Key   []byte
	Value []byte
}

type Item struct {
	Key   string
	Value interface{}
}

// DBBackend is what the engine code programs against. A transactional
// handle obtained from `OpenTransaction` satisfies the same interface, so
// reads and writes inside a vote batch go through the same call sites.
type DBBackend interface {
	Has(string) (bool, error)
	Get(string, interface{}) error
	New(string, interface{}) error
	Set(string, interface{}) error
	Remove(string) error

	GetIterator(prefix string, reverse bool) (func() (IterItem, bool), func())

	OpenTransaction() (*LevelDBBackend, error)
	Commit() error
	Discard() error
}
