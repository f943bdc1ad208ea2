package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	msg := []byte("approve proposal")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("other"), sig))
	assert.False(t, pub.Verify(msg, nil))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
}

func TestKeyFromSeedIsDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	seed[0] = 7
	a := PrivKeyEd25519FromSeed(seed).PublicKey()
	b := PrivKeyEd25519FromSeed(seed).PublicKey()
	assert.Equal(t, a.Address(), b.Address())
	assert.Equal(t, "sigs", string(a.Condition()[:4]))
}

func TestKeySerialization(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	raw, err := pub.Marshal()
	require.NoError(t, err)

	var got PublicKey
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, pub.Ed25519, got.Ed25519)
}
