package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the parts of the ABCI application that do not run
// transactions: genesis, block boundaries, commits and queries. BaseApp
// embeds it and adds CheckTx and DeliverTx.
//
// Failures of steps that do not depend on user input, like writing to the
// database, cannot be reported to tendermint and cause a panic.
type StoreApp struct {
	abci.BaseApplication

	// mu serializes every call touching the state.
	mu *sync.Mutex

	name        string
	logger      log.Logger
	root        swap.Context
	state       *chainState
	initializer swap.Initializer
	queryRouter swap.QueryRouter

	// block is the header of the block being processed. Until the first
	// BeginBlock after a start it carries only the last committed height.
	block abci.Header
}

// NewStoreApp loads the latest committed state of given store. It panics
// if the store cannot be read.
func NewStoreApp(name string, kv swap.CommitKVStore, queryRouter swap.QueryRouter, root swap.Context) *StoreApp {
	state, err := openChainState(kv)
	if err != nil {
		panic(err)
	}
	last, err := state.lastCommit()
	if err != nil {
		panic(err)
	}
	return &StoreApp{
		mu:          &sync.Mutex{},
		name:        name,
		logger:      log.NewNopLogger(),
		root:        root,
		state:       state,
		queryRouter: queryRouter,
		block:       abci.Header{Height: last.Version},
	}
}

// WithInit sets the genesis initializer.
func (s *StoreApp) WithInit(init swap.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger used by the application and every handler.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	return s
}

// Logger returns the application logger.
func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// GetChainID returns the chain id, or an empty string before the genesis.
func (s *StoreApp) GetChainID() string {
	return s.state.chainID
}

// BlockContext returns the context transactions of the current block are
// executed with. The chain id is present as soon as the genesis was
// loaded, even before the first block begins.
func (s *StoreApp) BlockContext() swap.Context {
	ctx := swap.WithLogger(s.root, s.logger)
	if s.state.chainID != "" {
		ctx = swap.WithChainID(ctx, s.state.chainID)
	}
	ctx = swap.WithHeight(ctx, s.block.Height)
	if !s.block.Time.IsZero() {
		ctx = swap.WithBlockTime(ctx, s.block.Time)
	}
	return ctx
}

// DeliverStore returns the cache DeliverTx writes to.
func (s *StoreApp) DeliverStore() swap.CacheableKVStore {
	return s.state.deliver
}

// CheckStore returns the cache CheckTx writes to.
func (s *StoreApp) CheckStore() swap.CacheableKVStore {
	return s.state.check
}

// Info returns the last committed height and app hash.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.state.lastCommit()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          swap.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

// InitChain stores the chain id and loads the app_state of the genesis.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(chainID string, appState []byte) error {
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis.json, run init first")
	}
	var opts swap.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := s.state.initChainID(chainID); err != nil {
		return err
	}
	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.state.deliver)
}

// BeginBlock records the header of the new block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.block = req.Header
	return abci.ResponseBeginBlock{}
}

// Commit persists the block and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. The path selects the bucket and
// may end with "?prefix" to match every key starting with the data. Key
// and Value of the response are ResultSets of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	qh := s.queryRouter.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path))
	}

	last, err := s.state.lastCommit()
	if err != nil {
		return queryError(err)
	}
	db := s.state.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	res := abci.ResponseQuery{Height: last.Version}
	if res.Key, err = swap.Marshal(ResultsFromKeys(models)); err != nil {
		return queryError(err)
	}
	if res.Value, err = swap.Marshal(ResultsFromValues(models)); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
