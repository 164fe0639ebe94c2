package app

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/commands/server"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/x/rent"
	"github.com/iov-one/swap/x/sigs"
	"github.com/iov-one/swap/x/token"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// genesisSupply is the balance of the development account, in the smallest
// unit of the asset.
const genesisSupply = "123456789000000"

func gconfInitializer() gconf.Initializer {
	return gconf.Initializer{
		Configs: map[string]func() gconf.Configuration{
			"token": func() gconf.Configuration { return &token.Configuration{} },
			"rent":  func() gconf.Configuration { return &rent.Configuration{} },
		},
	}
}

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// Arguments are an optional ticker followed by an optional hex address. If
// no address is given, a new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "IOV"
	if len(args) > 0 {
		ticker = args[0]
		if !token.IsTicker(ticker) {
			return nil, errors.Wrapf(errors.ErrInput, "invalid ticker %q", ticker)
		}
	}

	var addr swap.Address
	if len(args) > 1 {
		a, err := swap.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		// if no address provided, auto-generate one
		// and print out the private key
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		addr = sigs.PubKeyCondition(key.Public().(ed25519.PublicKey)).Address()
		fmt.Printf("private key: %s\n", hex.EncodeToString(key))
	}

	gen := map[string]interface{}{
		"gconf": map[string]interface{}{
			"token": token.Configuration{Issuer: addr},
			"rent":  rent.Configuration{Asset: ticker, Amount: 0},
		},
		"token": token.Genesis{
			Assets: []token.Asset{
				{Ticker: ticker, Name: "Swap development token", Decimals: 6},
			},
			Accounts: []token.GenesisAccount{
				{Owner: addr, Asset: ticker, Balance: genesisSupply},
			},
		},
	}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrType, err.Error())
	}
	return raw, nil
}

// GenerateApp returns the generator used by the start command. The database
// location is taken from the configuration.
func GenerateApp(conf *Config) server.AppGenerator {
	return func(home string, logger log.Logger, debug bool) (abci.Application, error) {
		stack, err := Stack(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, err
		}
		kv, err := CommitKVStore(conf.DBPath(home))
		if err != nil {
			return nil, err
		}
		application := Application(Name, stack, TxDecoder, kv, debug)
		application.WithInit(Initializers())

		// set the logger and return
		application.WithLogger(logger)
		return application, nil
	}
}
