package app

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/swaptest"
	"github.com/iov-one/swap/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenInitOptions(t *testing.T) {
	owner := swaptest.RandomAddr()

	raw, err := GenInitOptions([]string{"ETH", owner.String()})
	require.NoError(t, err)

	var opts swap.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	require.NoError(t, Initializers().FromGenesis(opts, db))

	tokens := token.NewController()
	bal, err := tokens.Balance(db, owner, "ETH")
	require.NoError(t, err)
	assert.Equal(t, genesisSupply, bal.ToBig().String())

	var conf token.Configuration
	require.NoError(t, gconf.Load(db, "token", &conf))
	assert.Equal(t, owner, conf.Issuer)
}

func TestGenInitOptionsInvalidTicker(t *testing.T) {
	_, err := GenInitOptions([]string{"not a ticker"})
	require.Error(t, err)
}
