package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
	"github.com/iov-one/bazaar/x/asset"
)

// AssetKey identifies a single asset by its registry address and id.
type AssetKey = asset.Key

// Listing is an active fixed price sell order.
type Listing struct {
	Key    AssetKey       `json:"key"`
	Seller bazaar.Address `json:"seller"`
	Price  coin.Coin      `json:"price"`
}

var _ orm.Model = (*Listing)(nil)

func (l *Listing) Marshal() ([]byte, error)   { return bazaar.MarshalBinary(l) }
func (l *Listing) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, l) }

// Validate rejects listings without a positive price. A zero price never
// represents an active listing.
func (l *Listing) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Key", l.Key.Validate())
	errs = errors.AppendField(errs, "Seller", l.Seller.Validate())
	errs = errors.AppendField(errs, "Price", validPrice(l.Price))
	return errs
}

func validPrice(p coin.Coin) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(ErrInvalidPrice, err.Error())
	}
	if !p.IsPositive() {
		return errors.Wrapf(ErrInvalidPrice, "%s is not positive", p)
	}
	return nil
}

// Proceeds is the amount owed to a seller.
type Proceeds struct {
	Seller bazaar.Address `json:"seller"`
	Amount coin.Coin      `json:"amount"`
}

var _ orm.Model = (*Proceeds)(nil)

func (p *Proceeds) Marshal() ([]byte, error)   { return bazaar.MarshalBinary(p) }
func (p *Proceeds) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, p) }

// Validate accepts only positive balances. A zero balance is not stored.
func (p *Proceeds) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Seller", p.Seller.Validate())
	if err := p.Amount.Validate(); err != nil {
		errs = errors.AppendField(errs, "Amount", err)
	} else if !p.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errs
}

// NewListingBucket returns the Listing Table, keyed by the binary asset
// key and indexed by seller.
func NewListingBucket() orm.ModelBucket {
	return orm.NewModelBucket("mlist", &Listing{},
		orm.WithIndex("seller", func(m orm.Model) ([]byte, error) {
			l, ok := m.(*Listing)
			if !ok {
				return nil, errors.Wrapf(errors.ErrType, "%T", m)
			}
			return l.Seller, nil
		}, false))
}

// NewProceedsBucket returns the Proceeds Table keyed by seller address.
func NewProceedsBucket() orm.ModelBucket {
	return orm.NewModelBucket("mproc", &Proceeds{})
}

// RegisterQuery exposes listings and proceeds:
//
//   /listings         listings by binary asset key
//   /listings/seller  listings of a seller
//   /proceeds         proceeds by seller address
func RegisterQuery(qr bazaar.QueryRouter) {
	NewListingBucket().Register("/listings", qr)
	NewProceedsBucket().Register("/proceeds", qr)
}
