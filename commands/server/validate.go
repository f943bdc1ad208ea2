package server

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
)

// ValidateGenesis dry runs the app_state of every genesis file against a
// fresh memory store. All files are checked and every failure is
// reported.
func ValidateGenesis(ini quorum.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis file path")
	}
	var errs error
	for _, path := range paths {
		errs = errors.Append(errs, errors.Wrap(validateGenesisFile(ini, path), path))
	}
	return errs
}

func validateGenesisFile(ini quorum.Initializer, path string) error {
	raw, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return errors.Wrap(errors.ErrNotFound, "genesis file")
	case err != nil:
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesis struct {
		ChainID string         `json:"chain_id"`
		State   quorum.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if genesis.ChainID != "" && !quorum.IsValidChainID(genesis.ChainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", genesis.ChainID)
	}
	return errors.Wrap(ini.FromGenesis(genesis.State, store.MemStore()), "cannot initialize from genesis")
}
