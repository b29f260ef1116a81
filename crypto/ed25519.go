/*
Package crypto wraps the ed25519 keys used to sign transactions.

Every public key maps to a sigs/ed25519/<key> condition, and the address
derived from that condition identifies the signer on chain.
*/
package crypto

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the conditions we get from signatures.
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key. It does not
// expose the key material so that hardware devices can implement it.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Verify verifies the signature was created for this message with the
// matching private key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || sig == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition encodes the public key into a condition.
func (p *PublicKey) Condition() bazaar.Condition {
	return bazaar.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the key holder.
func (p *PublicKey) Address() bazaar.Address {
	return p.Condition().Address()
}

// Validate ensures the key has the right size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key")
	}
	return nil
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519"`
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKeyEd25519 returns a random new private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed deterministically generates a private key from a
// 32 byte seed. Use it with a strong source of external randomness, or
// for deterministic keys in tests.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// Sign returns a signature of the message.
func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrState, "invalid ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

// PublicKey returns the public part of the key.
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// MarshalJSON writes the seed of the key in hex, which is all that is
// needed to restore it.
func (p *PrivateKey) MarshalJSON() ([]byte, error) {
	seed := ed25519.PrivateKey(p.Ed25519).Seed()
	return json.Marshal(map[string]string{"seed": hex.EncodeToString(seed)})
}

func (p *PrivateKey) UnmarshalJSON(raw []byte) error {
	var enc struct {
		Seed string `json:"seed"`
	}
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode private key")
	}
	seed, err := hex.DecodeString(enc.Seed)
	if err != nil || len(seed) != ed25519.SeedSize {
		return errors.Wrap(errors.ErrInput, "invalid private key seed")
	}
	*p = *PrivKeyEd25519FromSeed(seed)
	return nil
}
