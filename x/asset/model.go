package asset

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

const maxNameLength = 64

// Collection is a set of tokens issued by a single owner.
type Collection struct {
	// Address is derived from the collection id and used as the
	// registry address of all its tokens.
	Address bazaar.Address `json:"address"`
	Owner   bazaar.Address `json:"owner"`
	Name    string         `json:"name"`
	// Minted counts all tokens ever minted in the collection.
	Minted int64 `json:"minted"`
}

var _ orm.Model = (*Collection)(nil)

func (c *Collection) Marshal() ([]byte, error)   { return bazaar.MarshalBinary(c) }
func (c *Collection) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, c) }

func (c *Collection) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Address", c.Address.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if len(c.Name) > maxNameLength {
		errs = errors.AppendField(errs, "Name", errors.Wrap(errors.ErrInput, "too long"))
	}
	if c.Minted < 0 {
		errs = errors.AppendField(errs, "Minted", errors.ErrState)
	}
	return errs
}

// CollectionAddress returns the registry address of the collection with
// the given id.
func CollectionAddress(id []byte) bazaar.Address {
	return bazaar.NewCondition("asset", "coll", id).Address()
}

// Token is a single non fungible asset.
type Token struct {
	Key   Key            `json:"key"`
	Owner bazaar.Address `json:"owner"`
	// Approved may transfer this token on behalf of the owner. It is
	// cleared on every transfer.
	Approved bazaar.Address `json:"approved,omitempty"`
	URI      string         `json:"uri,omitempty"`
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Marshal() ([]byte, error)   { return bazaar.MarshalBinary(t) }
func (t *Token) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, t) }

func (t *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", t.Key.Validate())
	errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	if len(t.Approved) != 0 {
		errs = errors.AppendField(errs, "Approved", t.Approved.Validate())
	}
	return errs
}

// Operator allows an address to manage all tokens of an owner within a
// collection.
type Operator struct {
	Collection bazaar.Address `json:"collection"`
	Owner      bazaar.Address `json:"owner"`
	Operator   bazaar.Address `json:"operator"`
}

var _ orm.Model = (*Operator)(nil)

func (o *Operator) Marshal() ([]byte, error)   { return bazaar.MarshalBinary(o) }
func (o *Operator) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, o) }

func (o *Operator) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Collection", o.Collection.Validate())
	errs = errors.AppendField(errs, "Owner", o.Owner.Validate())
	errs = errors.AppendField(errs, "Operator", o.Operator.Validate())
	return errs
}

func operatorKey(collection, owner, operator bazaar.Address) []byte {
	key := make([]byte, 0, len(collection)+len(owner)+len(operator))
	key = append(key, collection...)
	key = append(key, owner...)
	return append(key, operator...)
}

// NewCollectionBucket returns the bucket of collections keyed by their
// address.
func NewCollectionBucket() orm.ModelBucket {
	return orm.NewModelBucket("acoll", &Collection{},
		orm.WithIndex("owner", func(m orm.Model) ([]byte, error) {
			c, ok := m.(*Collection)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", m)
			}
			return c.Owner, nil
		}, false))
}

// NewTokenBucket returns the bucket of tokens keyed by the binary form of
// their Key, indexed by owner.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("atoken", &Token{},
		orm.WithIndex("owner", func(m orm.Model) ([]byte, error) {
			t, ok := m.(*Token)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", m)
			}
			return t.Owner, nil
		}, false))
}

// NewOperatorBucket returns the bucket of operator approvals.
func NewOperatorBucket() orm.ModelBucket {
	return orm.NewModelBucket("aoper", &Operator{})
}

// RegisterQuery exposes collections, tokens and operators.
func RegisterQuery(qr bazaar.QueryRouter) {
	NewCollectionBucket().Register("/collections", qr)
	NewTokenBucket().Register("/tokens", qr)
	NewOperatorBucket().Register("/operators", qr)
}
