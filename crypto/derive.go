package crypto

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derivation accepts.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivedMarker = "DerivedAddress"
)

// DerivedKey is a 32 byte key that is not a point on the ed25519 curve.
type DerivedKey []byte

// Condition is the ed25519 condition of the derived key. No signature
// can ever satisfy it, so it can only be granted by the code that knows
// how to derive it.
func (k DerivedKey) Condition() quorum.Condition {
	return quorum.NewCondition(ExtensionName, KeyType, k)
}

// Address returns the address of the derived key condition.
func (k DerivedKey) Address() quorum.Address {
	return k.Condition().Address()
}

// CreateDerivedKey hashes the seeds, the bump and the namespace into a key.
// ErrConstraintSeeds is returned when the result is a valid curve point.
func CreateDerivedKey(namespace string, bump uint8, seeds ...[]byte) (DerivedKey, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	h := sha256.New()
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed longer than %d bytes", MaxSeedLength)
		}
		_, _ = h.Write(s)
	}
	_, _ = h.Write([]byte{bump})
	_, _ = h.Write([]byte(namespace))
	_, _ = h.Write([]byte(derivedMarker))
	key := h.Sum(nil)

	if IsOnCurve(key) {
		return nil, errors.Wrap(errors.ErrConstraintSeeds, "derived key is on the curve")
	}
	return key, nil
}

// FindDerivedKey returns the derived key for the smallest bump that
// produces an off curve key.
func FindDerivedKey(namespace string, seeds ...[]byte) (DerivedKey, uint8, error) {
	for bump := 0; bump < 256; bump++ {
		key, err := CreateDerivedKey(namespace, uint8(bump), seeds...)
		switch {
		case err == nil:
			return key, uint8(bump), nil
		case errors.ErrConstraintSeeds.Is(err):
			continue
		default:
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(errors.ErrConstraintSeeds, "no viable bump")
}

// VerifyDerivedKey re-derives the key and checks that bump is the canonical
// one and, when want is not empty, that the derived address equals want.
func VerifyDerivedKey(namespace string, bump uint8, want quorum.Address, seeds ...[]byte) (DerivedKey, error) {
	key, canonical, err := FindDerivedKey(namespace, seeds...)
	if err != nil {
		return nil, err
	}
	if bump != canonical {
		return nil, errors.Wrapf(errors.ErrConstraintSeeds, "bump %d is not canonical", bump)
	}
	if len(want) != 0 && !key.Address().Equals(want) {
		return nil, errors.Wrapf(errors.ErrConstraintSeeds, "derived address %s does not match %s", key.Address(), want)
	}
	return key, nil
}

// IsOnCurve returns true if the bytes decode to an ed25519 point.
func IsOnCurve(key []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(key)
	return err == nil
}
