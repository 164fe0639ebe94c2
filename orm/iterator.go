package orm

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key that does not have the prefix, or nil when there is none.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	// prefix is all 0xFF
	return prefix, nil
}

func queryPrefix(db swap.ReadOnlyKVStore, prefix []byte) ([]swap.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr swap.Iterator) ([]swap.Model, error) {
	defer itr.Close()

	var res []swap.Model
	for itr.Valid() {
		res = append(res, swap.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	return res, nil
}
