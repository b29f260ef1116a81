package bazaard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/store/iavl"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
)

const chainID = "bazaar-test-net"

// chain drives the application block by block and keeps track of the
// signer sequences.
type chain struct {
	t      *testing.T
	app    *app.BaseApp
	height int64
	seqs   map[string]int64
}

func newChain(t *testing.T, bus *app.EventBus, genesis []byte) *chain {
	t.Helper()
	a := Application(Stack(), iavl.MockCommitStore(), bus, true)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: genesis})
	c := &chain{t: t, app: a, seqs: make(map[string]int64)}
	c.begin()
	return c
}

func (c *chain) begin() {
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: chainID, Height: c.height, Time: time.Now()},
	})
}

// commit finishes the current block and starts the next one.
func (c *chain) commit() {
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	res := c.app.Commit()
	require.NotEmpty(c.t, res.Data)
	c.begin()
}

func (c *chain) deliver(signer *crypto.PrivateKey, msg bazaar.Msg) abci.ResponseDeliverTx {
	c.t.Helper()
	tx := NewTx(msg)
	key := signer.PublicKey().Address().String()
	require.NoError(c.t, tx.Sign(signer, chainID, c.seqs[key]))
	c.seqs[key]++
	raw, err := tx.Marshal()
	require.NoError(c.t, err)

	check := c.app.CheckTx(raw)
	require.Equal(c.t, uint32(0), check.Code, check.Log)
	return c.app.DeliverTx(raw)
}

func (c *chain) mustDeliver(signer *crypto.PrivateKey, msg bazaar.Msg) []byte {
	c.t.Helper()
	res := c.deliver(signer, msg)
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	return res.Data
}

// query returns the first result of the query, or false if nothing was
// found.
func (c *chain) query(path string, data []byte, dest bazaar.Persistent) bool {
	c.t.Helper()
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data})
	require.Equal(c.t, uint32(0), res.Code, res.Log)
	var values app.ResultSet
	require.NoError(c.t, values.Unmarshal(res.Value))
	if len(values.Results) == 0 {
		return false
	}
	require.NoError(c.t, dest.Unmarshal(values.Results[0]))
	return true
}

func TestMarketplace(t *testing.T) {
	seller := crypto.GenPrivKeyEd25519()
	buyer := crypto.GenPrivKeyEd25519()
	sellerAddr := seller.PublicKey().Address()
	buyerAddr := buyer.PublicKey().Address()

	genesis, err := GenInitOptions([]string{"IOV", sellerAddr.String()})
	require.NoError(t, err)

	bus := app.NewEventBus(0)
	require.NoError(t, bus.Start())
	defer bus.Stop()
	sub, err := bus.Subscribe(context.Background(), "test", "market.event='bought'", 1)
	require.NoError(t, err)

	c := newChain(t, bus, genesis)
	c.commit()

	var coll asset.Collection
	require.True(t, c.query("/collections/owner", sellerAddr, &coll))
	assert.Equal(t, "genesis", coll.Name)

	c.mustDeliver(seller, &cash.SendMsg{
		Source:      sellerAddr,
		Destination: buyerAddr,
		Amount:      coin.NewCoinp(1000, "IOV"),
	})
	raw := c.mustDeliver(seller, &asset.MintMsg{Collection: coll.Address, Owner: sellerAddr})
	key, err := asset.ParseKeyBytes(raw)
	require.NoError(t, err)

	// listing without approving the marketplace first must fail
	res := c.deliver(seller, &market.ListMsg{Key: key, Price: coin.NewCoinp(500, "IOV")})
	assert.Equal(t, market.ErrNotAuthorized.ABCICode(), res.Code, res.Log)

	c.mustDeliver(seller, &asset.ApproveMsg{Key: key, Approved: market.LedgerAddress})
	c.mustDeliver(seller, &market.ListMsg{Key: key, Price: coin.NewCoinp(500, "IOV")})
	c.commit()

	var listing market.Listing
	require.True(t, c.query("/listings", key.Bytes(), &listing))
	assert.Equal(t, sellerAddr, listing.Seller)
	assert.Equal(t, coin.NewCoin(500, "IOV"), listing.Price)

	res = c.deliver(buyer, &market.BuyMsg{Key: key, Payment: coin.NewCoinp(400, "IOV")})
	assert.Equal(t, market.ErrPriceNotMet.ABCICode(), res.Code, res.Log)
	c.mustDeliver(buyer, &market.BuyMsg{Key: key, Payment: coin.NewCoinp(500, "IOV")})

	// nothing is published before the block is committed
	select {
	case <-sub.Out():
		t.Fatal("event published before commit")
	default:
	}
	boughtAt := c.height
	c.commit()

	select {
	case msg := <-sub.Out():
		ev := msg.Data().(app.CommittedEvent)
		assert.Equal(t, boughtAt, ev.Height)
		bought, ok := ev.Event.(market.Bought)
		require.True(t, ok, "%T", ev.Event)
		assert.Equal(t, buyerAddr, bought.Buyer)
		assert.Equal(t, sellerAddr, bought.Seller)
		assert.Equal(t, coin.NewCoin(500, "IOV"), bought.Paid)
	case <-time.After(time.Second):
		t.Fatal("bought event not published")
	}

	var token asset.Token
	require.True(t, c.query("/tokens", key.Bytes(), &token))
	assert.Equal(t, buyerAddr, token.Owner)
	assert.False(t, c.query("/listings", key.Bytes(), &market.Listing{}))

	var proceeds market.Proceeds
	require.True(t, c.query("/proceeds", sellerAddr, &proceeds))
	assert.Equal(t, coin.NewCoin(500, "IOV"), proceeds.Amount)

	raw = c.mustDeliver(seller, &market.WithdrawMsg{})
	var released coin.Coin
	require.NoError(t, released.Unmarshal(raw))
	assert.Equal(t, coin.NewCoin(500, "IOV"), released)

	res = c.deliver(seller, &market.WithdrawMsg{})
	assert.Equal(t, market.ErrNoProceeds.ABCICode(), res.Code, res.Log)
	c.commit()

	assert.False(t, c.query("/proceeds", sellerAddr, &market.Proceeds{}))
	var wallet cash.Wallet
	require.True(t, c.query("/wallets", sellerAddr, &wallet))
	assert.Equal(t, coin.NewCoin(genesisFunds-1000+500, "IOV"), wallet.Balance("IOV"))
	require.True(t, c.query("/wallets", buyerAddr, &wallet))
	assert.Equal(t, coin.NewCoin(500, "IOV"), wallet.Balance("IOV"))
}

func TestTxCodec(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	msg := &market.BuyMsg{
		Key:     asset.NewKey(asset.CollectionAddress([]byte{0, 1}), []byte("token")),
		Payment: coin.NewCoinp(7, "IOV"),
	}
	tx := NewTx(msg)
	require.NoError(t, tx.Sign(key, chainID, 3))

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)

	got, err := decoded.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)
	sigs := decoded.(*Tx).GetSignatures()
	require.Len(t, sigs, 1)
	assert.Equal(t, int64(3), sigs[0].Sequence)

	_, err = TxDecoder([]byte("not a transaction"))
	assert.Error(t, err)
}

func TestGenInitOptions(t *testing.T) {
	_, err := GenInitOptions([]string{"iov"})
	assert.Error(t, err)

	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()
	raw, err := GenInitOptions([]string{"ABC", addr.String()})
	require.NoError(t, err)

	c := newChain(t, nil, raw)
	c.commit()
	var wallet cash.Wallet
	require.True(t, c.query("/wallets", addr, &wallet))
	assert.Equal(t, coin.NewCoin(genesisFunds, "ABC"), wallet.Balance("ABC"))
}
