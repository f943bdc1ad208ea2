package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/x/cash"
	"github.com/stretchr/testify/require"
)

func TestTestGenCmd(t *testing.T) {
	dir, err := ioutil.TempDir("", "testgen")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	outdir := filepath.Join(dir, "out")

	msg := &cash.SendMsg{
		Source:      weavetest.NewAddress(),
		Destination: weavetest.NewAddress(),
		Amount:      42,
		Memo:        "example",
	}
	examples := []Example{{Filename: "send_msg", Obj: msg}}
	require.NoError(t, TestGenCmd(examples, []string{outdir}))

	pb, err := ioutil.ReadFile(filepath.Join(outdir, "send_msg.bin"))
	require.NoError(t, err)
	var fromBin cash.SendMsg
	require.NoError(t, proto.Unmarshal(pb, &fromBin))
	require.Equal(t, msg, &fromBin)

	js, err := ioutil.ReadFile(filepath.Join(outdir, "send_msg.json"))
	require.NoError(t, err)
	var fromJSON cash.SendMsg
	require.NoError(t, json.Unmarshal(js, &fromJSON))
	require.Equal(t, msg, &fromJSON)
}
