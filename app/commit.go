package app

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// chainIDKey holds the chain id in the application store. The _sw: prefix
// is reserved for application metadata and never used by a bucket.
var chainIDKey = []byte("_sw:chainID")

// chainState is the persistent side of the application. Transactions are
// never applied to the committed store directly. Checks and deliveries
// each work on their own cache, and only the deliver cache is flushed on
// commit.
type chainState struct {
	committed swap.CommitKVStore
	deliver   swap.KVCacheWrap
	check     swap.KVCacheWrap

	// chainID is empty until the genesis was loaded.
	chainID string
}

func openChainState(kv swap.CommitKVStore) (*chainState, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return nil, errors.Wrap(err, "load chain id")
	}
	st := &chainState{committed: kv, chainID: string(raw)}
	st.resetCaches()
	return st, nil
}

func (st *chainState) resetCaches() {
	st.deliver = st.committed.CacheWrap()
	st.check = st.committed.CacheWrap()
}

// initChainID records the chain id as part of the genesis block. A chain id
// is set exactly once in the lifetime of a chain.
func (st *chainState) initChainID(chainID string) error {
	if st.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", st.chainID)
	}
	if !swap.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	if err := st.deliver.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	st.chainID = chainID
	return nil
}

func (st *chainState) lastCommit() (swap.CommitID, error) {
	return st.committed.LatestVersion()
}

// commit persists every delivered transaction of the current block and
// drops whatever the checks accumulated.
func (st *chainState) commit() (swap.CommitID, error) {
	st.check.Discard()
	if err := st.deliver.Write(); err != nil {
		return swap.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	id, err := st.committed.Commit()
	if err != nil {
		return id, err
	}
	st.resetCaches()
	return id, nil
}
