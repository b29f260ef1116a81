package asset

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
)

const (
	pathCreateCollection = "asset/create_collection"
	pathMint             = "asset/mint"
	pathApprove          = "asset/approve"
	pathSetOperator      = "asset/set_operator"
	pathTransfer         = "asset/transfer"

	maxURILength = 256
)

// CreateCollectionMsg creates a collection owned by Owner.
type CreateCollectionMsg struct {
	Owner bazaar.Address `json:"owner"`
	Name  string         `json:"name"`
}

var _ bazaar.Msg = (*CreateCollectionMsg)(nil)

func (CreateCollectionMsg) Path() string { return pathCreateCollection }

func (m *CreateCollectionMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if len(m.Name) > maxNameLength {
		errs = errors.AppendField(errs, "Name", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// MintMsg creates a token. It must be signed by the collection owner. An
// empty ID is assigned from the collection counter.
type MintMsg struct {
	Collection bazaar.Address `json:"collection"`
	ID         []byte         `json:"id,omitempty"`
	Owner      bazaar.Address `json:"owner"`
	URI        string         `json:"uri,omitempty"`
}

var _ bazaar.Msg = (*MintMsg)(nil)

func (MintMsg) Path() string { return pathMint }

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Collection", m.Collection.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if len(m.ID) > maxIDLength {
		errs = errors.AppendField(errs, "ID", errors.Wrap(errors.ErrInput, "too long"))
	}
	if len(m.URI) > maxURILength {
		errs = errors.AppendField(errs, "URI", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// ApproveMsg allows Approved to transfer the token. An empty Approved
// clears the approval.
type ApproveMsg struct {
	Key      Key            `json:"key"`
	Approved bazaar.Address `json:"approved,omitempty"`
}

var _ bazaar.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string { return pathApprove }

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", m.Key.Validate())
	if len(m.Approved) != 0 {
		errs = errors.AppendField(errs, "Approved", m.Approved.Validate())
	}
	return errs
}

// SetOperatorMsg grants or revokes the right of Operator to manage all
// tokens of Owner in the collection.
type SetOperatorMsg struct {
	Collection bazaar.Address `json:"collection"`
	Owner      bazaar.Address `json:"owner"`
	Operator   bazaar.Address `json:"operator"`
	Approved   bool           `json:"approved"`
}

var _ bazaar.Msg = (*SetOperatorMsg)(nil)

func (SetOperatorMsg) Path() string { return pathSetOperator }

func (m *SetOperatorMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Collection", m.Collection.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Operator", m.Operator.Validate())
	return errs
}

// TransferMsg moves a token. The main signer acts as the operator.
type TransferMsg struct {
	Key  Key            `json:"key"`
	From bazaar.Address `json:"from"`
	To   bazaar.Address `json:"to"`
}

var _ bazaar.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string { return pathTransfer }

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", m.Key.Validate())
	errs = errors.AppendField(errs, "From", m.From.Validate())
	errs = errors.AppendField(errs, "To", m.To.Validate())
	return errs
}
