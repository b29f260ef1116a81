package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/bazaar/errors"
	"github.com/iov-one/bazaar/store/iavl"
)

func TestCommitStore(t *testing.T) {
	cs := NewCommitStore(iavl.MockCommitStore())

	info, err := cs.CommitInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Version)

	key, value := []byte("foo"), []byte("bar")
	require.NoError(t, cs.DeliverStore().Set(key, value))

	// check state does not see uncommitted deliver writes
	got, err := cs.CheckStore().Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := cs.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = cs.CheckStore().Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestChainID(t *testing.T) {
	cs := NewCommitStore(iavl.MockCommitStore())
	db := cs.DeliverStore()

	assert.Equal(t, "", mustLoadChainID(db))

	err := saveChainID(db, "x")
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	require.NoError(t, saveChainID(db, "bazaar-test"))
	assert.Equal(t, "bazaar-test", mustLoadChainID(db))

	err = saveChainID(db, "bazaar-other")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}
