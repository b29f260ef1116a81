package market

import (
	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/coin"
)

const eventTag = "market.event"

// Listed is emitted when an asset is listed, or when the price of a
// listing changes.
type Listed struct {
	Key    AssetKey
	Seller bazaar.Address
	Price  coin.Coin
}

var _ bazaar.Event = Listed{}

func (Listed) Path() string { return "market/listed" }

func (e Listed) Tags() []common.KVPair {
	return []common.KVPair{
		tag(eventTag, "listed"),
		tag("market.asset", e.Key.String()),
		tag("market.seller", e.Seller.String()),
		tag("market.price", e.Price.String()),
	}
}

// Canceled is emitted when a listing is removed by its seller.
type Canceled struct {
	Key    AssetKey
	Seller bazaar.Address
}

var _ bazaar.Event = Canceled{}

func (Canceled) Path() string { return "market/canceled" }

func (e Canceled) Tags() []common.KVPair {
	return []common.KVPair{
		tag(eventTag, "canceled"),
		tag("market.asset", e.Key.String()),
		tag("market.seller", e.Seller.String()),
	}
}

// Bought is emitted when a listed asset is sold. Paid is the amount the
// buyer paid, which is at least the listing price.
type Bought struct {
	Key    AssetKey
	Seller bazaar.Address
	Buyer  bazaar.Address
	Price  coin.Coin
	Paid   coin.Coin
}

var _ bazaar.Event = Bought{}

func (Bought) Path() string { return "market/bought" }

func (e Bought) Tags() []common.KVPair {
	return []common.KVPair{
		tag(eventTag, "bought"),
		tag("market.asset", e.Key.String()),
		tag("market.seller", e.Seller.String()),
		tag("market.buyer", e.Buyer.String()),
		tag("market.price", e.Price.String()),
		tag("market.paid", e.Paid.String()),
	}
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
