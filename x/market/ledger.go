package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// Registry is the asset registry the ledger gates transfers of. The ledger
// never owns assets, it only reads ownership and authorization and asks
// the registry to transfer on behalf of a seller.
type Registry interface {
	OwnerOf(db bazaar.ReadOnlyKVStore, key AssetKey) (bazaar.Address, error)
	// IsApproved returns true if operator may transfer the asset on
	// behalf of its owner.
	IsApproved(db bazaar.ReadOnlyKVStore, operator bazaar.Address, key AssetKey) (bool, error)
	// TransferFrom moves the asset from its owner to a new one. It may run
	// arbitrary recipient code before returning.
	TransferFrom(ctx bazaar.Context, db bazaar.KVStore, operator, from, to bazaar.Address, key AssetKey) error
}

// Bank moves value between accounts.
type Bank interface {
	Balance(db bazaar.ReadOnlyKVStore, addr bazaar.Address, ticker string) (coin.Coin, error)
	MoveCoins(db bazaar.KVStore, src, dest bazaar.Address, amount coin.Coin) error
}

// LedgerAddress is the account holding the proceeds of all sales until
// they are withdrawn. It is also the operator the sellers must approve.
var LedgerAddress = bazaar.NewCondition("market", "escrow", []byte("ledger")).Address()

// Ledger is the marketplace state machine. All state lives in the store
// passed to each call.
type Ledger struct {
	registry Registry
	bank     Bank
	listings orm.ModelBucket
	proceeds orm.ModelBucket

	// running counts operations currently executing, including reentrant
	// ones. Operations are processed one at a time.
	running int
}

// NewLedger returns a ledger gating transfers on the given registry and
// settling payments through the given bank.
func NewLedger(registry Registry, bank Bank) *Ledger {
	return &Ledger{
		registry: registry,
		bank:     bank,
		listings: NewListingBucket(),
		proceeds: NewProceedsBucket(),
	}
}

// atomic runs fn against a cache wrap of db. The wrap is written only if
// fn succeeds, otherwise both the state changes and the events emitted by
// fn are dropped. A store that cannot be cache wrapped is refused.
func (l *Ledger) atomic(ctx bazaar.Context, db bazaar.KVStore, fn func(db bazaar.KVStore, conf Configuration) error) error {
	cacheable, ok := db.(bazaar.CacheableKVStore)
	if !ok {
		return errors.Wrap(errors.ErrState, "store does not support savepoints")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}
	if conf.ReentrancyGuard && l.running > 0 {
		return errors.Wrap(ErrReentrantCall, "another marketplace operation is in progress")
	}
	l.running++
	defer func() { l.running-- }()

	events := bazaar.GetEventLog(ctx)
	mark := events.Mark()

	cache := cacheable.CacheWrap()
	if err := fn(cache, conf); err != nil {
		cache.Discard()
		events.Rollback(mark)
		return err
	}
	if err := cache.Write(); err != nil {
		events.Rollback(mark)
		return errors.Wrap(err, "cannot write")
	}
	return nil
}

// List creates a listing of the asset at the given price. The seller must
// own the asset and the ledger must be approved to transfer it.
func (l *Ledger) List(ctx bazaar.Context, db bazaar.KVStore, key AssetKey, seller bazaar.Address, price coin.Coin) error {
	return l.atomic(ctx, db, func(db bazaar.KVStore, conf Configuration) error {
		if _, err := l.listing(db, key); err == nil {
			return errors.Wrapf(ErrAlreadyListed, "asset %s", key)
		} else if !ErrNotListed.Is(err) {
			return err
		}
		if err := checkPrice(conf, price); err != nil {
			return err
		}
		if err := l.checkSeller(db, key, seller); err != nil {
			return err
		}

		listing := Listing{Key: key, Seller: seller, Price: price}
		if err := l.listings.Put(db, key.Bytes(), &listing); err != nil {
			return errors.Wrap(err, "cannot save listing")
		}
		bazaar.GetLogger(ctx).Debug("asset listed",
			"asset", key.String(), "seller", seller.String(), "price", price.String())
		bazaar.Emit(ctx, Listed{Key: key, Seller: seller, Price: price})
		return nil
	})
}

// Cancel removes a listing. Only the seller can cancel.
func (l *Ledger) Cancel(ctx bazaar.Context, db bazaar.KVStore, key AssetKey, caller bazaar.Address) error {
	return l.atomic(ctx, db, func(db bazaar.KVStore, _ Configuration) error {
		listing, err := l.listing(db, key)
		if err != nil {
			return err
		}
		if !listing.Seller.Equals(caller) {
			return errors.Wrapf(ErrNotAssetOwner, "%s is not the seller of %s", caller, key)
		}
		if err := l.listings.Delete(db, key.Bytes()); err != nil {
			return errors.Wrap(err, "cannot delete listing")
		}
		bazaar.GetLogger(ctx).Debug("listing canceled",
			"asset", key.String(), "seller", caller.String())
		bazaar.Emit(ctx, Canceled{Key: key, Seller: caller})
		return nil
	})
}

// Update changes the price of a listing. Ownership and approval are
// verified again, so a seller that lost the asset cannot refresh a stale
// listing.
func (l *Ledger) Update(ctx bazaar.Context, db bazaar.KVStore, key AssetKey, caller bazaar.Address, price coin.Coin) error {
	return l.atomic(ctx, db, func(db bazaar.KVStore, conf Configuration) error {
		listing, err := l.listing(db, key)
		if err != nil {
			return err
		}
		if !listing.Seller.Equals(caller) {
			return errors.Wrapf(ErrNotAssetOwner, "%s is not the seller of %s", caller, key)
		}
		if err := checkPrice(conf, price); err != nil {
			return err
		}
		if err := l.checkSeller(db, key, caller); err != nil {
			return err
		}

		listing.Price = price
		if err := l.listings.Put(db, key.Bytes(), listing); err != nil {
			return errors.Wrap(err, "cannot save listing")
		}
		bazaar.GetLogger(ctx).Debug("listing updated",
			"asset", key.String(), "seller", caller.String(), "price", price.String())
		bazaar.Emit(ctx, Listed{Key: key, Seller: caller, Price: price})
		return nil
	})
}

// Buy purchases a listed asset. The whole paid amount is collected from
// the buyer and credited to the seller. The listing is removed and the
// seller credited before the registry is asked to transfer the asset.
func (l *Ledger) Buy(ctx bazaar.Context, db bazaar.KVStore, key AssetKey, buyer bazaar.Address, paid coin.Coin) error {
	return l.atomic(ctx, db, func(db bazaar.KVStore, _ Configuration) error {
		listing, err := l.listing(db, key)
		if err != nil {
			return err
		}
		if err := paid.Validate(); err != nil {
			return errors.Wrapf(ErrPriceNotMet, "invalid payment %s: %s", paid, err)
		}
		if !paid.SameType(listing.Price) || !paid.IsGTE(listing.Price) {
			return errors.Wrapf(ErrPriceNotMet, "paid %s, asset %s costs %s", paid, key, listing.Price)
		}
		if err := l.checkSeller(db, key, listing.Seller); err != nil {
			return err
		}

		if err := l.listings.Delete(db, key.Bytes()); err != nil {
			return errors.Wrap(err, "cannot delete listing")
		}
		if err := l.credit(db, listing.Seller, paid); err != nil {
			return err
		}
		if err := l.bank.MoveCoins(db, buyer, LedgerAddress, paid); err != nil {
			return errors.Wrapf(err, "cannot collect %s from %s", paid, buyer)
		}

		err = l.registry.TransferFrom(ctx, db, LedgerAddress, listing.Seller, buyer, key)
		switch {
		case err == nil:
		case errors.ErrUnauthorized.Is(err):
			return errors.Wrapf(ErrNotAuthorized, "cannot transfer %s from %s: %s", key, listing.Seller, err)
		default:
			return errors.Wrapf(err, "cannot transfer %s from %s", key, listing.Seller)
		}

		bazaar.GetLogger(ctx).Debug("asset bought",
			"asset", key.String(), "seller", listing.Seller.String(),
			"buyer", buyer.String(), "price", listing.Price.String(), "paid", paid.String())
		bazaar.Emit(ctx, Bought{
			Key:    key,
			Seller: listing.Seller,
			Buyer:  buyer,
			Price:  listing.Price,
			Paid:   paid,
		})
		return nil
	})
}

// Withdraw releases all proceeds of the caller. The balance is zeroed
// before the funds are released.
func (l *Ledger) Withdraw(ctx bazaar.Context, db bazaar.KVStore, caller bazaar.Address) (coin.Coin, error) {
	var amount coin.Coin
	err := l.atomic(ctx, db, func(db bazaar.KVStore, _ Configuration) error {
		var p Proceeds
		switch err := l.proceeds.One(db, caller, &p); {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			return errors.Wrapf(ErrNoProceeds, "%s", caller)
		default:
			return errors.Wrap(err, "cannot load proceeds")
		}
		if !p.Amount.IsPositive() {
			return errors.Wrapf(ErrNoProceeds, "%s", caller)
		}

		if err := l.proceeds.Delete(db, caller); err != nil {
			return errors.Wrap(err, "cannot zero proceeds")
		}
		if err := l.bank.MoveCoins(db, LedgerAddress, caller, p.Amount); err != nil {
			return errors.Wrapf(ErrTransferFailed, "cannot release %s to %s: %s", p.Amount, caller, err)
		}
		amount = p.Amount
		bazaar.GetLogger(ctx).Debug("proceeds withdrawn",
			"seller", caller.String(), "amount", p.Amount.String())
		return nil
	})
	if err != nil {
		return coin.Coin{}, err
	}
	return amount, nil
}

// Listing returns the listing of the asset, or nil if it is not listed.
func (l *Ledger) Listing(db bazaar.ReadOnlyKVStore, key AssetKey) (*Listing, error) {
	listing, err := l.listing(db, key)
	if ErrNotListed.Is(err) {
		return nil, nil
	}
	return listing, err
}

// Proceeds returns what the ledger owes to addr. The result is zero for
// an address that never sold anything or already withdrew everything. On a
// chain without a marketplace configuration the zero value has no ticker.
func (l *Ledger) Proceeds(db bazaar.ReadOnlyKVStore, addr bazaar.Address) (coin.Coin, error) {
	var p Proceeds
	switch err := l.proceeds.One(db, addr, &p); {
	case err == nil:
		return p.Amount, nil
	case errors.ErrNotFound.Is(err):
		conf, err := loadConfiguration(db)
		switch {
		case err == nil:
			return coin.NewCoin(0, conf.Ticker), nil
		case errors.ErrNotFound.Is(err):
			return coin.Coin{}, nil
		default:
			return coin.Coin{}, err
		}
	default:
		return coin.Coin{}, errors.Wrap(err, "cannot load proceeds")
	}
}

// TotalProceeds sums all outstanding proceeds. It must always match the
// balance of LedgerAddress.
func (l *Ledger) TotalProceeds(db bazaar.ReadOnlyKVStore) (coin.Coin, error) {
	it, err := db.Iterator(orm.PrefixRange([]byte("mproc:")))
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "cannot iterate proceeds")
	}
	defer it.Close()

	var total coin.Coin
	for ; it.Valid(); err = it.Next() {
		if err != nil {
			return coin.Coin{}, errors.Wrap(err, "iterator")
		}
		var p Proceeds
		if err := p.Unmarshal(it.Value()); err != nil {
			return coin.Coin{}, errors.Wrap(err, "cannot unmarshal proceeds")
		}
		if total, err = total.Add(p.Amount); err != nil {
			return coin.Coin{}, err
		}
	}
	return total, err
}

func (l *Ledger) listing(db bazaar.ReadOnlyKVStore, key AssetKey) (*Listing, error) {
	var listing Listing
	switch err := l.listings.One(db, key.Bytes(), &listing); {
	case err == nil:
		return &listing, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNotListed, "asset %s", key)
	default:
		return nil, errors.Wrap(err, "cannot load listing")
	}
}

// checkSeller ensures the seller owns the asset and the ledger may
// transfer it.
func (l *Ledger) checkSeller(db bazaar.ReadOnlyKVStore, key AssetKey, seller bazaar.Address) error {
	owner, err := l.registry.OwnerOf(db, key)
	if err != nil {
		return errors.Wrapf(err, "owner of %s", key)
	}
	if !owner.Equals(seller) {
		return errors.Wrapf(ErrNotAssetOwner, "%s does not own %s", seller, key)
	}
	ok, err := l.registry.IsApproved(db, LedgerAddress, key)
	if err != nil {
		return errors.Wrapf(err, "approval of %s", key)
	}
	if !ok {
		return errors.Wrapf(ErrNotAuthorized, "marketplace is not approved for %s", key)
	}
	return nil
}

// credit adds amount to the proceeds of seller.
func (l *Ledger) credit(db bazaar.KVStore, seller bazaar.Address, amount coin.Coin) error {
	balance, err := l.Proceeds(db, seller)
	if err != nil {
		return err
	}
	total, err := balance.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "cannot credit %s to %s", amount, seller)
	}
	return l.proceeds.Put(db, seller, &Proceeds{Seller: seller, Amount: total})
}

func checkPrice(conf Configuration, price coin.Coin) error {
	if err := validPrice(price); err != nil {
		return err
	}
	if price.Ticker != conf.Ticker {
		return errors.Wrapf(ErrInvalidPrice, "only %s is accepted, got %s", conf.Ticker, price.Ticker)
	}
	return nil
}
