package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const initialBalance = 123456789

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. An optional hex address receives the
// funds. If none is given a new key is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr quorum.Address
	if len(args) > 0 {
		a, err := quorum.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		addr = a
	} else {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	conf := multisig.DefaultConfiguration()
	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: addr, Balance: initialBalance},
		},
		"multisig": []interface{}{},
		"conf": map[string]interface{}{
			"multisig": &conf,
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "quorum.db")
	}

	codec := Codec()
	application, err := Application("quorumd", Stack(codec), codec.TxDecoder(), dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (quorum.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "serialize keys")
	}
	return pubKey.Address(), string(keys), nil
}
