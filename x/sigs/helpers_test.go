package sigs

import (
	"github.com/iov-one/bazaar"
)

// StdTx is a minimal signed transaction used by the tests.
type StdTx struct {
	bazaar.Tx
	Raw        []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(raw []byte) *StdTx {
	return &StdTx{Raw: raw}
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Raw, nil
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// SigCheckHandler stores the seen signers on each call.
type SigCheckHandler struct {
	Signers []bazaar.Condition
}

var _ bazaar.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &bazaar.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx bazaar.Context, db bazaar.KVStore, tx bazaar.Tx) (*bazaar.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &bazaar.DeliverResult{}, nil
}
