package cash

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
)

const optKey = "cash"

// GenesisAccount is a wallet as declared in the genesis file.
type GenesisAccount struct {
	Address bazaar.Address `json:"address"`
	Coins   []coin.Coin    `json:"coins"`
	Blocked bool           `json:"blocked,omitempty"`
}

// Initializer loads the wallets declared in the genesis file.
type Initializer struct{}

var _ bazaar.Initializer = Initializer{}

// FromGenesis creates a wallet for every declared account.
func (Initializer) FromGenesis(opts bazaar.Options, db bazaar.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewWalletBucket())
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if acct.Blocked {
			if err := ctrl.SetBlocked(db, acct.Address, true); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
		for _, c := range acct.Coins {
			if !c.IsPositive() {
				return errors.Wrapf(errors.ErrAmount, "account %d: %s", i, c)
			}
			// Blocked wallets refuse issued coins as well, so the
			// genesis balance is set directly.
			if err := issue(db, acct.Address, c); err != nil {
				return errors.Wrapf(err, "account %d", i)
			}
		}
	}
	return nil
}

func issue(db bazaar.KVStore, addr bazaar.Address, c coin.Coin) error {
	ctrl := NewController(NewWalletBucket())
	w, _, err := ctrl.load(db, addr)
	if err != nil {
		return err
	}
	if err := w.Add(c); err != nil {
		return err
	}
	return ctrl.save(db, addr, w)
}
