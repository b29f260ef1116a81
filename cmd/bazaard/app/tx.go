package bazaard

import (
	amino "github.com/tendermint/go-amino"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
	"github.com/iov-one/bazaar/x/sigs"
)

// codec knows every message the application routes. The amino prefix of
// each message is derived from its path.
var codec = amino.NewCodec()

func init() {
	codec.RegisterInterface((*bazaar.Msg)(nil), nil)
	for _, m := range Messages() {
		codec.RegisterConcrete(m, "bazaar/"+m.Path(), nil)
	}
}

// Messages returns a zero value of every message this application
// accepts.
func Messages() []bazaar.Msg {
	return []bazaar.Msg{
		&cash.SendMsg{},
		&cash.SetBlockedMsg{},
		&asset.CreateCollectionMsg{},
		&asset.MintMsg{},
		&asset.ApproveMsg{},
		&asset.SetOperatorMsg{},
		&asset.TransferMsg{},
		&market.ListMsg{},
		&market.CancelMsg{},
		&market.UpdateMsg{},
		&market.BuyMsg{},
		&market.WithdrawMsg{},
		&market.UpdateConfigurationMsg{},
	}
}

// Tx is the transaction envelope: a single message and the signatures
// authorizing it.
type Tx struct {
	Msg        bazaar.Msg           `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ bazaar.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps a message into an unsigned transaction.
func NewTx(msg bazaar.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (bazaar.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) GetMsg() (bazaar.Msg, error) {
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// Sign appends a signature created with the given key and sequence.
func (tx *Tx) Sign(signer crypto.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	raw, err := codec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal tx: %s", err)
	}
	return raw, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := codec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "unmarshal tx: %s", err)
	}
	return nil
}

// MarshalIndent returns the human readable form of the transaction.
func (tx *Tx) MarshalIndent() ([]byte, error) {
	raw, err := codec.MarshalJSONIndent(tx, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal tx: %s", err)
	}
	return raw, nil
}
