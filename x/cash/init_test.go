package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	addr := weavetest.NewAddress()
	genesis := fmt.Sprintf(`{"cash": [{"address": "%X", "balance": 500}]}`, []byte(addr))

	var opts quorum.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	bal, err := NewBucket().Balance(db, addr)
	require.NoError(t, err)
	require.Equal(t, uint64(500), bal)
}

func TestGenesisInvalidAddress(t *testing.T) {
	var opts quorum.Options
	require.NoError(t, json.Unmarshal([]byte(`{"cash": [{"address": "", "balance": 1}]}`), &opts))
	require.Error(t, Initializer{}.FromGenesis(opts, store.MemStore()))
}
