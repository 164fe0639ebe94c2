/*
Package leveldb provides a persistent CommitKVStore on top of goleveldb.

All changes collected during a block are kept in a single leveldb batch and
written together with the new commit information, so that a crash never
leaves a partially committed block on disk.
*/
package leveldb

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// commitKey holds the version and hash of the last commit. It is kept in the
// same key space as application data, under a prefix no bucket uses.
var commitKey = []byte("_s:commit")

// Store is a CommitKVStore backed by a leveldb database.
type Store struct {
	db      *goleveldb.DB
	pending *goleveldb.Batch
	last    swap.CommitID
}

var _ swap.CommitKVStore = (*Store)(nil)
var _ swap.ReadOnlyKVStore = (*Store)(nil)

// Open opens (or creates) a database stored in given directory and loads the
// latest committed version.
func Open(dir string) (*Store, error) {
	db, err := goleveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return newStore(db)
}

// OpenMemory returns a store that keeps all data in memory. Use it in
// tests.
func OpenMemory() (*Store, error) {
	db, err := goleveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open memory: %s", err)
	}
	return newStore(db)
}

func newStore(db *goleveldb.DB) (*Store, error) {
	s := &Store{
		db:      db,
		pending: new(goleveldb.Batch),
	}
	if err := s.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns the value at last committed state.
func (s *Store) Get(key []byte) ([]byte, error) {
	val, err := s.db.Get(key, nil)
	switch err {
	case nil:
		return val, nil
	case goleveldb.ErrNotFound:
		return nil, nil
	default:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
}

// Has returns true if the key exists in the last committed state.
func (s *Store) Has(key []byte) (bool, error) {
	ok, err := s.db.Has(key, nil)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Iterator over the committed state in ascending order.
func (s *Store) Iterator(start, end []byte) (swap.Iterator, error) {
	it := s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return newIter(it, false)
}

// ReverseIterator over the committed state in descending order.
func (s *Store) ReverseIterator(start, end []byte) (swap.Iterator, error) {
	it := s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	return newIter(it, true)
}

// CacheWrap returns a cache that reads the committed state and, when
// written, adds its changes to the batch of the next commit.
func (s *Store) CacheWrap() swap.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, batchWriter{b: s.pending}, nil)
}

// Commit writes all pending changes to disk, together with the new version
// and hash. The hash chains the previous hash with the content of the
// batch, so two nodes agree on it only if they applied the same changes.
func (s *Store) Commit() (swap.CommitID, error) {
	h := sha256.New()
	h.Write(s.last.Hash)
	h.Write(s.pending.Dump())
	next := swap.CommitID{
		Version: s.last.Version + 1,
		Hash:    h.Sum(nil),
	}

	s.pending.Put(commitKey, encodeCommit(next))
	if err := s.db.Write(s.pending, &opt.WriteOptions{Sync: true}); err != nil {
		return swap.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.pending.Reset()
	s.last = next
	return next, nil
}

// LoadLatestVersion reads the last commit information from the disk and
// drops all changes that were not committed.
func (s *Store) LoadLatestVersion() error {
	s.pending.Reset()
	raw, err := s.Get(commitKey)
	if err != nil {
		return err
	}
	if raw == nil {
		s.last = swap.CommitID{}
		return nil
	}
	id, err := decodeCommit(raw)
	if err != nil {
		return err
	}
	s.last = id
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s *Store) LatestVersion() (swap.CommitID, error) {
	return s.last, nil
}

func encodeCommit(id swap.CommitID) []byte {
	raw := make([]byte, 8, 8+len(id.Hash))
	binary.BigEndian.PutUint64(raw, uint64(id.Version))
	return append(raw, id.Hash...)
}

func decodeCommit(raw []byte) (swap.CommitID, error) {
	if len(raw) < 8 {
		return swap.CommitID{}, errors.Wrap(errors.ErrDatabase, "malformed commit information")
	}
	return swap.CommitID{
		Version: int64(binary.BigEndian.Uint64(raw[:8])),
		Hash:    append([]byte(nil), raw[8:]...),
	}, nil
}

// batchWriter collects changes in a leveldb batch.
type batchWriter struct {
	b *goleveldb.Batch
}

func (w batchWriter) Set(key, value []byte) error {
	w.b.Put(key, value)
	return nil
}

func (w batchWriter) Delete(key []byte) error {
	w.b.Delete(key)
	return nil
}

// iter adapts a leveldb iterator. Keys and values are copied, because
// leveldb reuses its buffers.
type iter struct {
	it      iterator.Iterator
	reverse bool
	valid   bool
}

func newIter(it iterator.Iterator, reverse bool) (*iter, error) {
	i := &iter{it: it, reverse: reverse}
	if reverse {
		i.valid = it.Last()
	} else {
		i.valid = it.First()
	}
	if err := it.Error(); err != nil {
		it.Release()
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return i, nil
}

func (i *iter) Valid() bool {
	return i.valid
}

func (i *iter) Next() error {
	if !i.valid {
		return errors.Wrap(errors.ErrState, "iterator advanced past the end")
	}
	if i.reverse {
		i.valid = i.it.Prev()
	} else {
		i.valid = i.it.Next()
	}
	if err := i.it.Error(); err != nil {
		i.valid = false
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (i *iter) Key() []byte {
	return append([]byte(nil), i.it.Key()...)
}

func (i *iter) Value() []byte {
	return append([]byte(nil), i.it.Value()...)
}

func (i *iter) Close() {
	i.it.Release()
	i.valid = false
}
