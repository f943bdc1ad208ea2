package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDerivedKeyIsOffCurve(t *testing.T) {
	for i := 0; i < 50; i++ {
		seed := []byte{byte(i), 0xab}
		key, bump, err := FindDerivedKey("multisig", seed)
		require.NoError(t, err)
		assert.Len(t, key, 32)
		assert.False(t, IsOnCurve(key))

		// Every smaller bump must land on the curve.
		for b := 0; b < int(bump); b++ {
			_, err := CreateDerivedKey("multisig", uint8(b), seed)
			assert.True(t, errors.ErrConstraintSeeds.Is(err))
		}

		again, err := CreateDerivedKey("multisig", bump, seed)
		require.NoError(t, err)
		assert.Equal(t, key, again)
	}
}

func TestPublicKeysAreOnCurve(t *testing.T) {
	for i := 0; i < 10; i++ {
		pub := GenPrivKeyEd25519().PublicKey()
		assert.True(t, IsOnCurve(pub.Ed25519))
	}
}

func TestDerivedKeyDependsOnInput(t *testing.T) {
	a, _, err := FindDerivedKey("multisig", []byte("a"))
	require.NoError(t, err)
	b, _, err := FindDerivedKey("multisig", []byte("b"))
	require.NoError(t, err)
	c, _, err := FindDerivedKey("other", []byte("a"))
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))
	assert.False(t, bytes.Equal(a, c))
}

func TestVerifyDerivedKey(t *testing.T) {
	seed := []byte("group")
	key, bump, err := FindDerivedKey("multisig", seed)
	require.NoError(t, err)

	got, err := VerifyDerivedKey("multisig", bump, key.Address(), seed)
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = VerifyDerivedKey("multisig", bump, nil, seed)
	require.NoError(t, err)

	_, err = VerifyDerivedKey("multisig", bump+1, nil, seed)
	assert.True(t, errors.ErrConstraintSeeds.Is(err))

	other := GenPrivKeyEd25519().PublicKey().Address()
	_, err = VerifyDerivedKey("multisig", bump, other, seed)
	assert.True(t, errors.ErrConstraintSeeds.Is(err))
}

func TestDerivationLimits(t *testing.T) {
	_, err := CreateDerivedKey("multisig", 0, make([]byte, MaxSeedLength+1))
	assert.True(t, errors.ErrInput.Is(err))

	seeds := make([][]byte, MaxSeeds+1)
	_, _, err = FindDerivedKey("multisig", seeds...)
	assert.True(t, errors.ErrInput.Is(err))
}
