package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/swap/errors"
)

// cachedItems returns all items of the btree within [start, end), ordered
// as requested. A nil bound means no bound.
func cachedItems(bt *btree.BTree, start, end []byte, reverse bool) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		items = append(items, i.(keyer))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIter joins the cached items with those of the parent iterator,
// taking into consideration overwrites and deletes.
type cacheIter struct {
	items   []keyer
	idx     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(items []keyer, parent Iterator, reverse bool) (*cacheIter, error) {
	it := &cacheIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *cacheIter) Valid() bool {
	return i.current() != none
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *cacheIter) Next() error {
	switch i.current() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrState, "iterator advanced past the end")
	}
	return i.skipDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIter) Key() []byte {
	switch i.current() {
	case us, both:
		return i.items[i.idx].Key()
	case parent:
		return i.parent.Key()
	default:
		panic("iterator advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *cacheIter) Value() []byte {
	switch i.current() {
	case us, both:
		return i.items[i.idx].(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("iterator advanced past the end")
	}
}

// Close releases the Iterator.
func (i *cacheIter) Close() {
	i.parent.Close()
	i.items = nil
}

// skipDeleted fast forwards over all cached deletions, together with the
// parent entries they shadow.
func (i *cacheIter) skipDeleted() error {
	for {
		src := i.current()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.items[i.idx].(deletedItem); !ok {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// current selects the iterator with the next key in iteration order.
func (i *cacheIter) current() source {
	ours := i.idx < len(i.items)
	theirs := i.parent != nil && i.parent.Valid()

	switch {
	case !ours && !theirs:
		return none
	case !theirs:
		return us
	case !ours:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}
