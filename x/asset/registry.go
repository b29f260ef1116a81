package asset

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Receiver is notified when it receives a token. Returning an error
// rejects the token and fails the transfer.
type Receiver interface {
	OnReceived(ctx bazaar.Context, db bazaar.KVStore, operator, from bazaar.Address, key Key) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(ctx bazaar.Context, db bazaar.KVStore, operator, from bazaar.Address, key Key) error

func (fn ReceiverFunc) OnReceived(ctx bazaar.Context, db bazaar.KVStore, operator, from bazaar.Address, key Key) error {
	return fn(ctx, db, operator, from, key)
}

// Registry keeps track of collections, token ownership and transfer
// authorizations.
type Registry struct {
	collections orm.ModelBucket
	tokens      orm.ModelBucket
	operators   orm.ModelBucket
	collSeq     orm.Sequence
	receivers   map[string]Receiver
}

// NewRegistry returns a registry using the default buckets.
func NewRegistry() *Registry {
	return &Registry{
		collections: NewCollectionBucket(),
		tokens:      NewTokenBucket(),
		operators:   NewOperatorBucket(),
		collSeq:     orm.NewSequence("acoll", "id"),
		receivers:   make(map[string]Receiver),
	}
}

// OnReceived registers a receiver that is called whenever the given
// address receives a token. Receivers are part of the application wiring,
// they are not stored in the state.
func (r *Registry) OnReceived(addr bazaar.Address, rcv Receiver) {
	r.receivers[string(addr)] = rcv
}

// CreateCollection creates a new collection owned by the given address and
// returns its registry address.
func (r *Registry) CreateCollection(db bazaar.KVStore, owner bazaar.Address, name string) (bazaar.Address, error) {
	id, err := r.collSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "collection id")
	}
	c := Collection{
		Address: CollectionAddress(id),
		Owner:   owner,
		Name:    name,
	}
	if err := r.collections.Put(db, c.Address, &c); err != nil {
		return nil, errors.Wrap(err, "cannot save collection")
	}
	return c.Address, nil
}

// Collection returns the collection with the given address.
func (r *Registry) Collection(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Collection, error) {
	var c Collection
	if err := r.collections.One(db, addr, &c); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrUnknownCollection, "%s", addr)
		}
		return nil, err
	}
	return &c, nil
}

// Mint creates a new token in the collection. An empty id is replaced
// with the next free sequence number of the collection. Only the
// collection owner can mint, which the caller must ensure.
func (r *Registry) Mint(db bazaar.KVStore, collection bazaar.Address, id []byte, owner bazaar.Address, uri string) (Key, error) {
	c, err := r.Collection(db, collection)
	if err != nil {
		return Key{}, err
	}
	c.Minted++
	if len(id) == 0 {
		id = orm.EncodeSequence(c.Minted)
	}
	key := NewKey(collection, id)
	if err := key.Validate(); err != nil {
		return Key{}, err
	}
	switch err := r.tokens.Has(db, key.Bytes()); {
	case err == nil:
		return Key{}, errors.Wrapf(ErrDuplicateToken, "%s", key)
	case !errors.ErrNotFound.Is(err):
		return Key{}, err
	}
	t := Token{Key: key, Owner: owner, URI: uri}
	if err := r.tokens.Put(db, key.Bytes(), &t); err != nil {
		return Key{}, errors.Wrap(err, "cannot save token")
	}
	if err := r.collections.Put(db, collection, c); err != nil {
		return Key{}, errors.Wrap(err, "cannot save collection")
	}
	return key, nil
}

// Token returns the token with the given key.
func (r *Registry) Token(db bazaar.ReadOnlyKVStore, key Key) (*Token, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	var t Token
	if err := r.tokens.One(db, key.Bytes(), &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrUnknownToken, "%s", key)
		}
		return nil, err
	}
	return &t, nil
}

// OwnerOf returns the current owner of the token.
func (r *Registry) OwnerOf(db bazaar.ReadOnlyKVStore, key Key) (bazaar.Address, error) {
	t, err := r.Token(db, key)
	if err != nil {
		return nil, err
	}
	return t.Owner, nil
}

// IsApproved returns true if the operator was approved for this token, or
// as an operator for all tokens of the owner in the collection.
func (r *Registry) IsApproved(db bazaar.ReadOnlyKVStore, operator bazaar.Address, key Key) (bool, error) {
	t, err := r.Token(db, key)
	if err != nil {
		return false, err
	}
	return r.isApproved(db, t, operator)
}

func (r *Registry) isApproved(db bazaar.ReadOnlyKVStore, t *Token, operator bazaar.Address) (bool, error) {
	if len(t.Approved) != 0 && t.Approved.Equals(operator) {
		return true, nil
	}
	return r.IsOperator(db, t.Key.Registry, t.Owner, operator)
}

// IsOperator returns true if the operator manages all tokens of the owner
// in the collection.
func (r *Registry) IsOperator(db bazaar.ReadOnlyKVStore, collection, owner, operator bazaar.Address) (bool, error) {
	switch err := r.operators.Has(db, operatorKey(collection, owner, operator)); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Approve sets the single address allowed to transfer the token. An empty
// approved address clears the approval. The caller must be the owner or
// one of its operators.
func (r *Registry) Approve(db bazaar.KVStore, caller bazaar.Address, key Key, approved bazaar.Address) error {
	t, err := r.Token(db, key)
	if err != nil {
		return err
	}
	if !t.Owner.Equals(caller) {
		ok, err := r.IsOperator(db, key.Registry, t.Owner, caller)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "%s cannot approve %s", caller, key)
		}
	}
	if t.Owner.Equals(approved) {
		return errors.Wrap(errors.ErrInput, "owner cannot be approved")
	}
	t.Approved = approved
	return r.tokens.Put(db, key.Bytes(), t)
}

// SetOperator grants or revokes the right of the operator to manage all
// tokens of the owner in the collection.
func (r *Registry) SetOperator(db bazaar.KVStore, collection, owner, operator bazaar.Address, approved bool) error {
	if _, err := r.Collection(db, collection); err != nil {
		return err
	}
	if owner.Equals(operator) {
		return errors.Wrap(errors.ErrInput, "owner cannot be its own operator")
	}
	key := operatorKey(collection, owner, operator)
	if !approved {
		if err := r.operators.Delete(db, key); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	return r.operators.Put(db, key, &Operator{Collection: collection, Owner: owner, Operator: operator})
}

// TransferFrom moves the token from its owner to a new one. The operator
// must be the owner, the approved address or an operator of the owner.
// The approval is cleared. When the recipient registered a Receiver it is
// called after the state was updated.
func (r *Registry) TransferFrom(ctx bazaar.Context, db bazaar.KVStore, operator, from, to bazaar.Address, key Key) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	t, err := r.Token(db, key)
	if err != nil {
		return err
	}
	if !t.Owner.Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the owner of %s", from, key)
	}
	if !operator.Equals(from) {
		ok, err := r.isApproved(db, t, operator)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "%s cannot transfer %s", operator, key)
		}
	}

	t.Owner = to
	t.Approved = nil
	if err := r.tokens.Put(db, key.Bytes(), t); err != nil {
		return errors.Wrap(err, "cannot save token")
	}

	if rcv, ok := r.receivers[string(to)]; ok {
		if err := rcv.OnReceived(ctx, db, operator, from, key); err != nil {
			return errors.Wrapf(errors.Append(ErrRejected, err), "%s refused %s", to, key)
		}
	}
	return nil
}
