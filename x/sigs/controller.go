package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
)

// SignCodeV1 prefixes the bytes of every signature, so they can never
// be confused with another signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and advances the
// sequence of each signer. It returns the signer conditions in signature
// order. A key may sign a tx only once.
func VerifyTxSignatures(db quorum.KVStore, tx SignedTx, chainID string) ([]quorum.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]quorum.Condition, 0, len(sigs))
	for i, sig := range sigs {
		cond, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature #%d", i)
		}
		for _, seen := range signers {
			if seen.Equals(cond) {
				return nil, errors.Wrapf(errors.ErrDuplicate, "signature #%d: signer %s", i, cond)
			}
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks sig over payload and stores the incremented
// sequence of the signer.
func VerifySignature(db quorum.KVStore, sig *StdSignature, payload []byte, chainID string) (quorum.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	bucket := NewBucket()
	user, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest that is signed for payload:
//
//	SignCodeV1 | len(chainID) uint8 | chainID | seq int64 big endian | payload
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !quorum.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{uint8(len(chainID))})
	h.Write([]byte(chainID))
	var s [8]byte
	binary.BigEndian.PutUint64(s[:], uint64(seq))
	h.Write(s[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx for chainID with the given sequence of signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Sequence: seq, Pubkey: signer.PublicKey(), Signature: sig}, nil
}

// NextSequence returns the sequence the next signature of pubkey must
// carry.
func NextSequence(db quorum.ReadOnlyKVStore, pubkey *crypto.PublicKey) (int64, error) {
	user, err := NewBucket().GetOrCreate(db, pubkey)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
