package app

import (
	"github.com/iov-one/swap"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...swap.Initializer) swap.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []swap.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts swap.Options, kv swap.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
