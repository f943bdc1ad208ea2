package main

import (
	"encoding/json"
	"flag"
	"io"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/multisig"
)

type derived struct {
	Address quorum.Address `json:"address"`
	Bump    uint8          `json:"bump"`
}

// deriveCmd prints the signer of a group given as a hex address, or
// the proposal address of a nonce given with -nonce.
func deriveCmd(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("derive", flag.ContinueOnError)
	nonce := fl.Uint64("nonce", 0, "print the proposal address of this nonce")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	nonceSet := false
	fl.Visit(func(f *flag.Flag) { nonceSet = nonceSet || f.Name == "nonce" })

	var res derived
	switch {
	case fl.NArg() == 1 && !nonceSet:
		group, err := quorum.ParseAddress(fl.Arg(0))
		if err != nil {
			return errors.Wrap(err, "group")
		}
		key, bump, err := multisig.DeriveSigner(group)
		if err != nil {
			return err
		}
		res = derived{Address: key.Address(), Bump: bump}
	case fl.NArg() == 0 && nonceSet:
		key, bump, err := multisig.DeriveProposal(*nonce)
		if err != nil {
			return err
		}
		res = derived{Address: key.Address(), Bump: bump}
	default:
		return errors.Wrap(errors.ErrInput, "usage: derive <group address> | derive -nonce N")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
