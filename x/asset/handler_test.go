package asset

import (
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store"
)

type router map[string]bazaar.Handler

func (r router) Handle(path string, h bazaar.Handler) { r[path] = h }

func TestHandlers(t *testing.T) {
	Convey("Given the asset handlers", t, func() {
		db := store.MemStore()
		auth := &bazaartest.CtxAuth{Key: "asset"}
		reg := NewRegistry()
		r := router{}
		RegisterRoutes(r, auth, reg)

		issuer := bazaartest.NewCondition()
		alice := bazaartest.NewCondition()
		bob := bazaartest.NewCondition()

		deliver := func(msg bazaar.Msg, signers ...bazaar.Condition) (*bazaar.DeliverResult, error) {
			ctx := auth.SetConditions(context.Background(), signers...)
			h := r[msg.Path()]
			So(h, ShouldNotBeNil)
			tx := &bazaartest.Tx{Msg: msg}
			if _, err := h.Check(ctx, db.CacheWrap(), tx); err != nil {
				return nil, err
			}
			return h.Deliver(ctx, db, tx)
		}

		res, err := deliver(&CreateCollectionMsg{Owner: issuer.Address(), Name: "cards"}, issuer)
		So(err, ShouldBeNil)
		coll := bazaar.Address(res.Data)

		Convey("Creating a collection requires the owner signature", func() {
			_, err := deliver(&CreateCollectionMsg{Owner: issuer.Address()}, alice)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("Only the collection owner can mint", func() {
			_, err := deliver(&MintMsg{Collection: coll, Owner: alice.Address()}, alice)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("Mint, approve and transfer", func() {
			res, err := deliver(&MintMsg{Collection: coll, Owner: alice.Address(), URI: "ipfs://card"}, issuer)
			So(err, ShouldBeNil)
			key, err := ParseKeyBytes(res.Data)
			So(err, ShouldBeNil)

			_, err = deliver(&TransferMsg{Key: key, From: alice.Address(), To: bob.Address()}, bob)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			_, err = deliver(&ApproveMsg{Key: key, Approved: bob.Address()}, alice)
			So(err, ShouldBeNil)

			_, err = deliver(&TransferMsg{Key: key, From: alice.Address(), To: bob.Address()}, bob)
			So(err, ShouldBeNil)

			owner, err := reg.OwnerOf(db, key)
			So(err, ShouldBeNil)
			So(owner, ShouldResemble, bob.Address())
		})

		Convey("Operators are set by the owner", func() {
			msg := &SetOperatorMsg{Collection: coll, Owner: alice.Address(), Operator: bob.Address(), Approved: true}
			_, err := deliver(msg, bob)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)

			_, err = deliver(msg, alice)
			So(err, ShouldBeNil)
			ok, err := reg.IsOperator(db, coll, alice.Address(), bob.Address())
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Tokens can be queried by owner", func() {
			_, err := deliver(&MintMsg{Collection: coll, Owner: alice.Address()}, issuer)
			So(err, ShouldBeNil)

			qr := bazaar.NewQueryRouter()
			RegisterQuery(qr)
			h := qr.Handler("/tokens/owner")
			So(h, ShouldNotBeNil)
			models, err := h.Query(db, "", alice.Address())
			So(err, ShouldBeNil)
			So(models, ShouldHaveLength, 1)
		})
	})
}

func TestGenesis(t *testing.T) {
	Convey("Collections are loaded from genesis", t, func() {
		genesis := `{
			"asset": [
				{"owner": "0102030405060708090021222324252627282930", "name": "genesis",
				 "tokens": [{"owner": "0102030405060708090021222324252627282930", "uri": "ipfs://x"}]}
			]
		}`
		var opts bazaar.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

		var colls []Collection
		owner := bazaar.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x29, 0x30}
		_, err := NewCollectionBucket().ByIndex(db, "owner", owner, &colls)
		So(err, ShouldBeNil)
		So(colls, ShouldHaveLength, 1)
		So(colls[0].Minted, ShouldEqual, 1)
	})
}
