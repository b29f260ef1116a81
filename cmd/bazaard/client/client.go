package client

import (
	"sync"

	"github.com/pkg/errors"
	nm "github.com/tendermint/tendermint/node"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/app"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
	"github.com/iov-one/bazaar/x/sigs"
)

// NewLocalConnection wraps an in-process node with a client, useful for tests
func NewLocalConnection(node *nm.Node) rpcclient.Client {
	return rpcclient.NewLocal(node)
}

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// Client is a tendermint client wrapped to provide simple access to the
// data structures of a bazaar node.
type Client struct {
	conn rpcclient.Client
}

// NewClient wraps a Client around an existing tendermint client
// connection.
func NewClient(conn rpcclient.Client) *Client {
	return &Client{conn: conn}
}

func (c *Client) TendermintClient() rpcclient.Client {
	return c.conn
}

// ChainID returns the chain id declared in the genesis of the node.
func (c *Client) ChainID() (string, error) {
	gen, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrap(err, "genesis")
	}
	return gen.Genesis.ChainID, nil
}

// Height returns the height of the latest block.
func (c *Client) Height() (int64, error) {
	status, err := c.conn.Status()
	if err != nil {
		return -1, err
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// AbciResponse contains a query result: a (possibly empty) list of
// key-value pairs, and the height at which it queried.
type AbciResponse struct {
	Models []bazaar.Model
	Height int64
}

// AbciQuery calls abci query on tendermint rpc, verifies if it is an
// error or empty, and if there is data pulls out the ResultSets from keys
// and values.
func (c *Client) AbciQuery(path string, data []byte) (AbciResponse, error) {
	var out AbciResponse

	q, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return out, err
	}
	resp := q.Response
	if resp.IsErr() {
		return out, errors.Errorf("(%d): %s", resp.Code, resp.Log)
	}
	out.Height = resp.Height
	if len(resp.Key) == 0 {
		return out, nil
	}

	var keys, vals app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return out, err
	}
	if err := vals.Unmarshal(resp.Value); err != nil {
		return out, err
	}
	out.Models, err = app.JoinResults(&keys, &vals)
	return out, err
}

// queryOne loads the single model stored under the key. It returns false
// if nothing is stored there.
func (c *Client) queryOne(path string, key []byte, dest bazaar.Persistent) (bool, error) {
	resp, err := c.AbciQuery(path, key)
	if err != nil {
		return false, err
	}
	if len(resp.Models) == 0 {
		return false, nil
	}
	if err := dest.Unmarshal(resp.Models[0].Value); err != nil {
		return false, errors.Wrapf(err, "cannot decode %s model", path)
	}
	return true, nil
}

// NextSequence returns the sequence the next signature of the address
// must carry. Addresses that never signed start at zero.
func (c *Client) NextSequence(addr bazaar.Address) (int64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.WithMessage(err, "invalid address")
	}
	var user sigs.UserData
	ok, err := c.queryOne("/auth", addr, &user)
	if err != nil || !ok {
		return 0, err
	}
	return user.Sequence, nil
}

// Wallet returns the wallet of the address or nil if it holds nothing.
func (c *Client) Wallet(addr bazaar.Address) (*cash.Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid address")
	}
	var w cash.Wallet
	if ok, err := c.queryOne("/wallets", addr, &w); err != nil || !ok {
		return nil, err
	}
	return &w, nil
}

// Listing returns the active listing of the asset or nil.
func (c *Client) Listing(key asset.Key) (*market.Listing, error) {
	var l market.Listing
	if ok, err := c.queryOne("/listings", key.Bytes(), &l); err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

// Proceeds returns the amount the seller can withdraw or nil.
func (c *Client) Proceeds(seller bazaar.Address) (*market.Proceeds, error) {
	var p market.Proceeds
	if ok, err := c.queryOne("/proceeds", seller, &p); err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// Collections returns all collections owned by the address.
func (c *Client) Collections(owner bazaar.Address) ([]*asset.Collection, error) {
	resp, err := c.AbciQuery("/collections/owner", owner)
	if err != nil {
		return nil, err
	}
	out := make([]*asset.Collection, 0, len(resp.Models))
	for _, m := range resp.Models {
		var coll asset.Collection
		if err := coll.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrap(err, "cannot decode collection")
		}
		out = append(out, &coll)
	}
	return out, nil
}

// BroadcastTxResponse is the result of submitting a transaction.
type BroadcastTxResponse struct {
	Error    error                           // not-nil if there was an error sending
	Response *ctypes.ResultBroadcastTxCommit // not-nil if we got response from node
}

// IsError returns the error for failure if it failed, or nil if it
// succeeded.
func (b BroadcastTxResponse) IsError() error {
	if b.Error != nil {
		return b.Error
	}
	if b.Response.CheckTx.IsErr() {
		ctx := b.Response.CheckTx
		return errors.Errorf("CheckTx error: (%d) %s", ctx.Code, ctx.Log)
	}
	if b.Response.DeliverTx.IsErr() {
		dtx := b.Response.DeliverTx
		return errors.Errorf("DeliverTx error: (%d) %s", dtx.Code, dtx.Log)
	}
	return nil
}

// BroadcastTx serializes a signed transaction and writes it to the
// blockchain. It returns when the transaction is committed.
func (c *Client) BroadcastTx(tx bazaar.Tx) BroadcastTxResponse {
	data, err := tx.Marshal()
	if err != nil {
		return BroadcastTxResponse{Error: err}
	}
	res, err := c.conn.BroadcastTxCommit(data)
	return BroadcastTxResponse{Error: err, Response: res}
}

// Sequencer provides the current sequence of an address.
type Sequencer interface {
	NextSequence(addr bazaar.Address) (int64, error)
}

// Nonce caches the sequence of an address so that several transactions
// can be signed without querying the blockchain each time.
type Nonce struct {
	mutex   sync.Mutex
	seq     Sequencer
	addr    bazaar.Address
	nonce   int64
	queried bool
	// unused is set when the cached nonce was not handed out yet.
	unused bool
}

// NewNonce creates a nonce for a client / address pair. Call Query to
// force a query, Next to use the cache if possible.
func NewNonce(seq Sequencer, addr bazaar.Address) *Nonce {
	return &Nonce{seq: seq, addr: addr}
}

// Query always queries the blockchain for the next nonce. The returned
// value is also the one the following Next call returns.
func (n *Nonce) Query() (int64, error) {
	nonce, err := n.seq.NextSequence(n.addr)
	if err != nil {
		return 0, err
	}
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.nonce = nonce
	n.queried = true
	n.unused = true
	return n.nonce, nil
}

// Next returns the nonce to sign the next transaction with. It assumes
// every nonce it returned before was used. Only the first call queries
// the blockchain.
func (n *Nonce) Next() (int64, error) {
	n.mutex.Lock()
	queried := n.queried
	n.mutex.Unlock()
	if !queried {
		if _, err := n.Query(); err != nil {
			return 0, err
		}
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()
	if n.unused {
		n.unused = false
		return n.nonce, nil
	}
	n.nonce++
	return n.nonce, nil
}
