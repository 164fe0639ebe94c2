/*
Package app links together all the various components
to construct the swap node.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/app"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store/leveldb"
	"github.com/iov-one/swap/x"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
	"github.com/iov-one/swap/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Name is reported to tendermint on the Info call.
const Name = "swap"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain(metrics utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the offer and token handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	tokens := token.NewController()
	offer.RegisterRoutes(r, authFn, tokens, rent.NewController(tokens))
	token.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/offers", "/assets", "/accounts", "/deposits" and "/auth"
func QueryRouter() swap.QueryRouter {
	r := swap.NewQueryRouter()
	r.RegisterAll(
		offer.RegisterQuery,
		token.RegisterQuery,
		rent.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) (swap.Handler, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn)), nil
}

// Initializers loads the token extension and its configurations from the
// genesis file.
func Initializers() swap.Initializer {
	return app.ChainInitializers(
		gconfInitializer(),
		token.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h swap.Handler, tx swap.TxDecoder, kv swap.CommitKVStore, debug bool) app.BaseApp {
	ctx := context.Background()
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	return app.NewBaseApp(store, tx, h, debug)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (swap.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		db, err := leveldb.OpenMemory()
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database path %q", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	db, err := leveldb.Open(path + ".db")
	if err != nil {
		return nil, err
	}
	return db, nil
}
