package market

import (
	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/gconf"
)

const packageName = "market"

// Configuration is the on-chain configuration of the marketplace.
type Configuration struct {
	// Owner can update the configuration.
	Owner bazaar.Address `json:"owner"`
	// Ticker is the currency all prices and payments are made in.
	Ticker string `json:"ticker"`
	// ReentrancyGuard rejects any ledger operation started while another
	// one is still running.
	ReentrancyGuard bool `json:"reentrancy_guard,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return bazaar.MarshalBinary(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return bazaar.UnmarshalBinary(raw, c) }

func (c *Configuration) GetOwner() bazaar.Address { return c.Owner }

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if !coin.IsCC(c.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "%q", c.Ticker))
	}
	return errs
}

func loadConfiguration(db bazaar.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return conf, errors.Wrap(err, "marketplace configuration")
	}
	return conf, nil
}

// SaveConfiguration validates and stores the marketplace configuration.
func SaveConfiguration(db bazaar.KVStore, conf Configuration) error {
	return gconf.Save(db, packageName, &conf)
}

// UpdateConfigurationMsg patches the configuration. Zero fields are left
// unchanged.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ bazaar.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string { return "market/update_configuration" }

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	var errs error
	if len(m.Patch.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Patch.Owner.Validate())
	}
	if m.Patch.Ticker != "" && !coin.IsCC(m.Patch.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.ErrCurrency)
	}
	return errs
}
