package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest/assert"
	"github.com/iov-one/bazaar/coin"
	"github.com/iov-one/bazaar/x/asset"
	"github.com/iov-one/bazaar/x/cash"
	"github.com/iov-one/bazaar/x/market"
)

const ownerHex = "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"

func TestCmdMint(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-collection", registryHex,
		"-owner", ownerHex,
		"-id", "cafe",
		"-uri", "ipfs://token",
	}
	if err := cmdMint(nil, &output, args); err != nil {
		t.Fatalf("cannot create a mint transaction: %s", err)
	}
	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	msg := tx.Msg.(*asset.MintMsg)
	assert.Equal(t, bazaar.Address(fromHex(t, registryHex)), msg.Collection)
	assert.Equal(t, bazaar.Address(fromHex(t, ownerHex)), msg.Owner)
	assert.Equal(t, []byte{0xca, 0xfe}, msg.ID)
	assert.Equal(t, "ipfs://token", msg.URI)
}

func TestCmdApproveMarket(t *testing.T) {
	var output bytes.Buffer
	if err := cmdApprove(nil, &output, []string{"-asset", assetArg, "-market"}); err != nil {
		t.Fatalf("cannot create an approve transaction: %s", err)
	}
	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	msg := tx.Msg.(*asset.ApproveMsg)
	assert.Equal(t, wantKey(t), msg.Key)
	assert.Equal(t, market.LedgerAddress, msg.Approved)
}

func TestCmdCreateCollectionRequiresOwner(t *testing.T) {
	var output bytes.Buffer
	if err := cmdCreateCollection(nil, &output, []string{"-name", "art"}); err == nil {
		t.Fatal("a collection without an owner must not be created")
	}
}

func TestCmdSendTokensHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-src", registryHex,
		"-dst", ownerHex,
		"-amount", "5 DOGE",
		"-memo", "a memo",
	}
	if err := cmdSendTokens(nil, &output, args); err != nil {
		t.Fatalf("cannot create a new token transfer transaction: %s", err)
	}
	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	msg := tx.Msg.(*cash.SendMsg)
	assert.Equal(t, bazaar.Address(fromHex(t, registryHex)), msg.Source)
	assert.Equal(t, bazaar.Address(fromHex(t, ownerHex)), msg.Destination)
	assert.Equal(t, "a memo", msg.Memo)
	assert.Equal(t, coin.NewCoinp(5, "DOGE"), msg.Amount)
}
