package gconf

import (
	"sort"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Initializer fulfils the swap.Initializer interface to load configurations
// from the genesis file.
//
// Configs maps a package name to a constructor of its configuration
// message. A configuration present in the genesis for an unknown package is
// rejected. A registered package without genesis configuration is skipped.
type Initializer struct {
	Configs map[string]func() Configuration
}

var _ swap.Initializer = Initializer{}

// FromGenesis will parse every configuration from the "gconf" genesis
// section and save it to the database
func (i Initializer) FromGenesis(opts swap.Options, db swap.KVStore) error {
	var confOptions swap.Options
	if err := opts.ReadOptions("gconf", &confOptions); err != nil {
		return errors.Wrap(errors.ErrInput, "read gconf: "+err.Error())
	}

	// sort for a deterministic order of writes and errors
	pkgs := make([]string, 0, len(confOptions))
	for pkg := range confOptions {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	for _, pkg := range pkgs {
		newConf, ok := i.Configs[pkg]
		if !ok {
			return errors.Wrapf(errors.ErrInput, "unknown configuration package %q", pkg)
		}
		if err := InitConfig(db, opts, pkg, newConf()); err != nil {
			return err
		}
	}
	return nil
}
