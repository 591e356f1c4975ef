package decryption

import (
	"fmt"
	"sync"

	"github.com/rob-gra/go-mbus/mbus"
	bolt "go.etcd.io/bbolt"
)

// keyID is the lookup key shared by both providers: manufacturer plus
// identification number uniquely names a meter's AES key regardless of
// which telegram carried it.
func keyID(ctx KeyContext) string {
	return fmt.Sprintf("%s-%08d", ctx.Manufacturer.String(), ctx.IdentificationNumber)
}

// StaticKeyProvider is a fixed in-memory KeyProvider, suited to tests and
// deployments with a small, known meter population.
type StaticKeyProvider struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

// NewStaticKeyProvider constructs an empty provider.
func NewStaticKeyProvider() *StaticKeyProvider {
	return &StaticKeyProvider{keys: make(map[string][]byte)}
}

// SetKey registers the 16-byte key for the given manufacturer and
// identification number.
func (p *StaticKeyProvider) SetKey(manufacturer mbus.ManufacturerCode, identificationNumber uint32, key []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := keyID(KeyContext{Manufacturer: manufacturer, IdentificationNumber: identificationNumber})
	stored := make([]byte, len(key))
	copy(stored, key)
	p.keys[id] = stored
}

// Key implements KeyProvider.
func (p *StaticKeyProvider) Key(ctx KeyContext) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	key, ok := p.keys[keyID(ctx)]
	if !ok {
		return nil, &mbus.DecryptionError{Kind: mbus.DecErrKeyNotFound, Mode: ctx.SecurityMode}
	}
	return key, nil
}

var keyBucket = []byte("mbus-keys")

// BoltKeyProvider persists meter AES keys in a bbolt database, for
// deployments that need keys to survive process restarts without an
// external secrets service.
type BoltKeyProvider struct {
	db *bolt.DB
}

// OpenBoltKeyProvider opens (creating if necessary) a bbolt database at
// path and ensures its key bucket exists.
func OpenBoltKeyProvider(path string) (*BoltKeyProvider, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(keyBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltKeyProvider{db: db}, nil
}

// Close releases the underlying database handle.
func (p *BoltKeyProvider) Close() error {
	return p.db.Close()
}

// SetKey persists the 16-byte key for the given manufacturer and
// identification number.
func (p *BoltKeyProvider) SetKey(manufacturer mbus.ManufacturerCode, identificationNumber uint32, key []byte) error {
	id := keyID(KeyContext{Manufacturer: manufacturer, IdentificationNumber: identificationNumber})
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(keyBucket).Put([]byte(id), key)
	})
}

// Key implements KeyProvider.
func (p *BoltKeyProvider) Key(ctx KeyContext) ([]byte, error) {
	var key []byte
	err := p.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(keyBucket).Get([]byte(keyID(ctx)))
		if v == nil {
			return &mbus.DecryptionError{Kind: mbus.DecErrKeyNotFound, Mode: ctx.SecurityMode}
		}
		key = make([]byte, len(v))
		copy(key, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}
