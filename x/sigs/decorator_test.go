package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/bazaar"
	"github.com/iov-one/bazaar/bazaartest"
	"github.com/iov-one/bazaar/crypto"
	"github.com/iov-one/bazaar/store"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := bazaar.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []bazaar.Condition{priv.PublicKey().Condition()}

	tx := NewStdTx([]byte("art"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec bazaar.Decorator, my bazaar.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec bazaar.Decorator, my bazaar.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(bazaar.Decorator, bazaar.Tx) error{check, deliver} {
		tx.Signatures = nil
		assert.Error(t, fn(d, tx), "%d", i)

		tx.Signatures = []*StdSignature{sig}
		assert.NoError(t, fn(d, tx), "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// replay
		assert.Error(t, fn(d, tx), "%d", i)

		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		assert.NoError(t, fn(ad, tx), "%d", i)
		assert.Empty(t, signers.Signers)

		tx.Signatures = []*StdSignature{sig1}
		assert.NoError(t, fn(ad, tx), "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}
}

func TestDecoratorChargesGas(t *testing.T) {
	kv := store.MemStore()
	chainID := "gas-charge"
	ctx := bazaar.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("gas"))
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	h := &bazaartest.Handler{CheckResult: bazaar.CheckResult{GasAllocated: 10}}
	res, err := NewDecorator().Check(ctx, kv, tx, h)
	require.NoError(t, err)
	assert.EqualValues(t, 10+signatureVerifyCost, res.GasAllocated)
}

func TestDecoratorUnsignedTx(t *testing.T) {
	kv := store.MemStore()
	ctx := bazaar.WithChainID(context.Background(), "unsigned-tx")
	h := new(SigCheckHandler)

	_, err := NewDecorator().Deliver(ctx, kv, &bazaartest.Tx{}, h)
	require.NoError(t, err)
	assert.Empty(t, h.Signers)
}

func TestAuthenticate(t *testing.T) {
	a, b := bazaartest.NewCondition(), bazaartest.NewCondition()
	ctx := withSigners(context.Background(), []bazaar.Condition{a})

	auth := Authenticate{}
	assert.Equal(t, []bazaar.Condition{a}, auth.GetConditions(ctx))
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.False(t, auth.HasAddress(ctx, b.Address()))
	assert.Empty(t, auth.GetConditions(context.Background()))
}
