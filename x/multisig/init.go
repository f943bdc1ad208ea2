package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ quorum.Initializer = Initializer{}

// FromGenesis will parse initial groups and the configuration from genesis
// and save them in the database. Groups get the canonical signer bump.
func (Initializer) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, confPkg, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		conf = DefaultConfiguration()
	default:
		return errors.Wrap(err, "init config")
	}

	var groups []struct {
		Address   quorum.Address   `json:"address"`
		Owners    []quorum.Address `json:"owners"`
		Threshold uint64           `json:"threshold"`
	}
	if err := opts.ReadOptions("multisig", &groups); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewGroupBucket()
	for i, g := range groups {
		if len(g.Owners) > int(conf.MaxOwners) {
			return errors.Wrapf(ErrTooManyOwners, "group #%d", i)
		}
		_, bump, err := DeriveSigner(g.Address)
		if err != nil {
			return errors.Wrapf(err, "group #%d signer", i)
		}
		switch err := bucket.Has(kv, g.Address); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "group #%d", i)
		case !errors.ErrNotFound.Is(err):
			return err
		}
		group := Group{
			Address:    g.Address,
			SignerBump: uint32(bump),
			Owners:     g.Owners,
			Threshold:  g.Threshold,
		}
		if err := bucket.Put(kv, g.Address, &group); err != nil {
			return errors.Wrapf(err, "cannot save #%d group", i)
		}
	}
	return nil
}
