package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limits struct {
	Max int `json:"max"`
}

func (l *limits) Marshal() ([]byte, error) { return json.Marshal(l) }
func (l *limits) Unmarshal(b []byte) error { return json.Unmarshal(b, l) }

func (l *limits) Validate() error {
	if l.Max <= 0 {
		return errors.Wrap(errors.ErrState, "max must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limits
	err := Load(db, "pkg", &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "pkg", &limits{Max: 0})
	assert.True(t, errors.ErrState.Is(err))

	require.NoError(t, Save(db, "pkg", &limits{Max: 4}))
	require.NoError(t, Load(db, "pkg", &got))
	assert.Equal(t, 4, got.Max)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantMax int
	}{
		"configured": {
			genesis: `{"conf": {"pkg": {"max": 9}}}`,
			wantMax: 9,
		},
		"missing package": {
			genesis: `{"conf": {"other": {"max": 9}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"pkg": {"max": -1}}}`,
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts quorum.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "pkg", &limits{})
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)

			var got limits
			require.NoError(t, Load(db, "pkg", &got))
			assert.Equal(t, tc.wantMax, got.Max)
		})
	}
}
