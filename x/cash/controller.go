package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Controller is the functionality other extensions use to move value.
type Controller interface {
	// Balance returns the amount of the given currency held by the
	// address. A missing wallet holds nothing.
	Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address, ticker string) (coin.Coin, error)

	// MoveCoins moves the given amount from src to dest. It fails if src
	// does not hold enough coins or dest refuses the transfer.
	MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount coin.Coin) error

	// IssueCoins creates the given amount in the dest wallet.
	IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount coin.Coin) error
}

// BaseController is the wallet bucket backed Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) load(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (*Wallet, bool, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, true, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{}, false, nil
	default:
		return nil, false, errors.Wrap(err, "cannot load wallet")
	}
}

func (c BaseController) Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address, ticker string) (coin.Coin, error) {
	w, _, err := c.load(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	return w.Balance(ticker), nil
}

func (c BaseController) MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination are the same")
	}

	sender, ok, err := c.load(db, src)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if err := sender.Add(amount.Negative()); err != nil {
		return errors.Wrapf(err, "sender %s", src)
	}

	recipient, _, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Blocked {
		return errors.Wrapf(ErrBlocked, "recipient %s", dest)
	}
	if err := recipient.Add(amount); err != nil {
		return errors.Wrapf(err, "recipient %s", dest)
	}

	if err := c.save(db, src, sender); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

func (c BaseController) IssueCoins(db bazaar.KVStore, dest bazaar.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, _, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Blocked && amount.IsPositive() {
		return errors.Wrapf(ErrBlocked, "recipient %s", dest)
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

// SetBlocked changes whether the wallet accepts incoming transfers.
func (c BaseController) SetBlocked(db bazaar.KVStore, addr bazaar.Address, blocked bool) error {
	w, _, err := c.load(db, addr)
	if err != nil {
		return err
	}
	w.Blocked = blocked
	return c.save(db, addr, w)
}

// save stores the wallet. Empty unblocked wallets are removed.
func (c BaseController) save(db bazaar.KVStore, addr bazaar.Address, w *Wallet) error {
	if len(w.Coins) == 0 && !w.Blocked {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "cannot delete wallet")
		}
		return nil
	}
	if err := c.bucket.Put(db, addr, w); err != nil {
		return errors.Wrap(err, "cannot save wallet")
	}
	return nil
}
