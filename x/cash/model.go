package cash

import (
	"sort"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/orm"
)

// BucketName is where we store the balances.
const BucketName = "cash"

// Wallet holds the balance of an account, one coin per currency, ordered
// by ticker.
type Wallet struct {
	Coins []coin.Coin `json:"coins"`
	// Blocked wallets refuse every incoming transfer.
	Blocked bool `json:"blocked"`
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Marshal() ([]byte, error) {
	return bazaar.MarshalBinary(w)
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return bazaar.UnmarshalBinary(raw, w)
}

// Validate requires all coins to be valid, positive and sorted by ticker
// without duplicates.
func (w *Wallet) Validate() error {
	var errs error
	for i, c := range w.Coins {
		if err := c.Validate(); err != nil {
			errs = errors.AppendField(errs, "Coins", err)
			continue
		}
		if !c.IsPositive() {
			errs = errors.AppendField(errs, "Coins", errors.Wrapf(errors.ErrAmount, "%s is not positive", c))
		}
		if i > 0 && w.Coins[i-1].Ticker >= c.Ticker {
			errs = errors.AppendField(errs, "Coins", errors.Wrap(errors.ErrState, "coins not sorted"))
		}
	}
	return errs
}

// Balance returns the amount held in the given currency.
func (w *Wallet) Balance(ticker string) coin.Coin {
	for _, c := range w.Coins {
		if c.Ticker == ticker {
			return c
		}
	}
	return coin.NewCoin(0, ticker)
}

// Add modifies the wallet by the given amount, which may be negative. The
// result must not be negative.
func (w *Wallet) Add(amount coin.Coin) error {
	i := sort.Search(len(w.Coins), func(i int) bool { return w.Coins[i].Ticker >= amount.Ticker })
	if i == len(w.Coins) || w.Coins[i].Ticker != amount.Ticker {
		if !amount.IsPositive() {
			if amount.IsZero() {
				return nil
			}
			return errors.Wrapf(ErrInsufficientFunds, "no %s in the wallet", amount.Ticker)
		}
		w.Coins = append(w.Coins, coin.Coin{})
		copy(w.Coins[i+1:], w.Coins[i:])
		w.Coins[i] = amount
		return nil
	}

	sum, err := w.Coins[i].Add(amount)
	if err != nil {
		return err
	}
	switch {
	case sum.IsPositive():
		w.Coins[i] = sum
	case sum.IsZero():
		w.Coins = append(w.Coins[:i], w.Coins[i+1:]...)
	default:
		return errors.Wrapf(ErrInsufficientFunds, "have %s, need %s", w.Coins[i], amount.Negative())
	}
	return nil
}

// NewWalletBucket returns a bucket storing wallets keyed by their owner
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}
