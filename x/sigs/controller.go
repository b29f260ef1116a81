package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build a
// signature.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx and increments
// the sequence of every signer.
//
// It returns the conditions of all signers, possibly empty, or an error if
// any signature is invalid.
func VerifyTxSignatures(db bazaar.KVStore, tx SignedTx, chainID string) ([]bazaar.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	signers := make([]bazaar.Condition, 0, len(sigs))
	for i, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against the sign bytes and the
// chain, and stores the incremented sequence of the signer.
func VerifySignature(db bazaar.KVStore, sig *StdSignature, signBytes []byte, chainID string) (bazaar.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	bucket := NewUserBucket()
	user, err := loadOrCreate(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(user.Pubkey.Ed25519, sig.Pubkey.Ed25519) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "public key mismatch")
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "cannot save user")
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing.

The signed message has the following format:

	version | len(chainID) | chainID      | nonce             | signBytes
	4bytes  | uint8        | ascii string | int64 (bigendian) | serialized transaction

The result is prehashed with sha512 before it is passed to the ed25519
signing and verification.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !bazaar.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+len(nonce)+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, chainID...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}

// BuildSignBytesTx calculates the sign bytes of the given tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature of the given tx for the given sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, errors.Wrap(err, "cannot sign")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the next signature of the given key
// must carry.
func NextSequence(db bazaar.ReadOnlyKVStore, pubkey *crypto.PublicKey) (int64, error) {
	user, err := loadOrCreate(db, NewUserBucket(), pubkey)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
