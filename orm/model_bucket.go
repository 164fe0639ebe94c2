package orm

import (
	"reflect"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	swap.Persistent
	Validate() error
}

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db swap.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db swap.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// before being written.
	Put(db swap.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db swap.KVStore, key []byte) error

	// ByPrefix calls fn for every stored entity whose primary key starts
	// with given prefix, in key order. Iteration stops on the first error.
	ByPrefix(db swap.ReadOnlyKVStore, prefix []byte, fn func(key []byte, m Model) error) error

	// Register registers the bucket as a query handler under given path.
	Register(path string, r swap.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// same type as given prototype.
func NewModelBucket(name string, proto Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name),
		model: reflect.TypeOf(proto),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

func (mb *modelBucket) One(db swap.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := swap.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(err, "%s bucket", mb.b.name)
	}
	return nil
}

func (mb *modelBucket) Has(db swap.ReadOnlyKVStore, key []byte) error {
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db swap.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be stored in %s bucket", m, mb.b.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := swap.Marshal(m)
	if err != nil {
		return err
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db swap.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) ByPrefix(db swap.ReadOnlyKVStore, prefix []byte, fn func(key []byte, m Model) error) error {
	itr, err := db.Iterator(prefixRange(mb.b.DBKey(prefix)))
	if err != nil {
		return err
	}
	defer itr.Close()

	for itr.Valid() {
		key, _ := mb.b.StripKey(itr.Key())
		m := reflect.New(mb.model.Elem()).Interface().(Model)
		if err := swap.Unmarshal(itr.Value(), m); err != nil {
			return errors.Wrapf(err, "%s bucket", mb.b.name)
		}
		if err := fn(key, m); err != nil {
			return err
		}
		if err := itr.Next(); err != nil {
			return errors.Wrap(err, "iterator")
		}
	}
	return nil
}

func (mb *modelBucket) Register(path string, r swap.QueryRouter) {
	mb.b.Register(path, r)
}

var _ ModelBucket = (*modelBucket)(nil)
