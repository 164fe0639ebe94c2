package orm

import (
	"regexp"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the DB. It knows nothing about the type
// of the data it stores.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data. Panics on invalid name.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic("Illegal bucket: " + name)
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
func (b Bucket) DBKey(key []byte) []byte {
	// append(b.prefix, key...) would just append to this slice and
	// return b.prefix. The next call would do the same an overwrite it.
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// StripKey returns the primary key of given database key, or false if the
// key does not belong to this bucket.
func (b Bucket) StripKey(dbKey []byte) ([]byte, bool) {
	if len(dbKey) < len(b.prefix) || string(dbKey[:len(b.prefix)]) != string(b.prefix) {
		return nil, false
	}
	return dbKey[len(b.prefix):], true
}

// Get returns the raw value stored under given primary key, or nil.
func (b Bucket) Get(db swap.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrapf(err, "%s bucket", b.name)
	}
	return raw, nil
}

// Has returns true if a value is stored under given primary key.
func (b Bucket) Has(db swap.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrapf(err, "%s bucket", b.name)
	}
	return ok, nil
}

// Set stores the raw value under given primary key.
func (b Bucket) Set(db swap.KVStore, key, value []byte) error {
	if len(key) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s bucket key", b.name)
	}
	if err := db.Set(b.DBKey(key), value); err != nil {
		return errors.Wrapf(err, "%s bucket", b.name)
	}
	return nil
}

// Delete removes the value stored under given primary key.
func (b Bucket) Delete(db swap.KVStore, key []byte) error {
	if err := db.Delete(b.DBKey(key)); err != nil {
		return errors.Wrapf(err, "%s bucket", b.name)
	}
	return nil
}

// Register the bucket as a query handler under given path. Queries support
// the key and the prefix modifiers, the data being the primary key or its
// prefix.
func (b Bucket) Register(path string, r swap.QueryRouter) {
	r.Register(path, b)
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db swap.ReadOnlyKVStore, mod string, data []byte) ([]swap.Model, error) {
	switch mod {
	case swap.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []swap.Model{swap.Pair(key, value)}, nil
	case swap.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier: %q", mod)
	}
}
