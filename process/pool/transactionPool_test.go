package pool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyshard/ps-chain-go/data/block"
)

func createTestTx(id int) *block.Transaction {
	return &block.Transaction{
		Hash:    []byte(fmt.Sprintf("tx hash %03d", id)),
		Payload: []byte(fmt.Sprintf("payload %03d", id)),
	}
}

func TestNewTransactionPool(t *testing.T) {
	t.Parallel()

	tp, err := NewTransactionPool(0)
	assert.Nil(t, tp)
	assert.Equal(t, ErrInvalidCapacity, err)

	tp, err = NewTransactionPool(10)
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.False(t, tp.IsInterfaceNil())
}

func TestTransactionPool_AddTransaction(t *testing.T) {
	t.Parallel()

	t.Run("nil transaction should error", func(t *testing.T) {
		t.Parallel()

		tp, _ := NewTransactionPool(10)
		assert.Equal(t, ErrNilTransaction, tp.AddTransaction(0, nil))
	})
	t.Run("duplicate hash is ignored", func(t *testing.T) {
		t.Parallel()

		tp, _ := NewTransactionPool(10)
		tx := createTestTx(1)
		require.NoError(t, tp.AddTransaction(0, tx))
		require.NoError(t, tp.AddTransaction(0, tx))
		assert.Equal(t, 1, tp.NumPending(0))
	})
	t.Run("full shard queue should error", func(t *testing.T) {
		t.Parallel()

		tp, _ := NewTransactionPool(2)
		require.NoError(t, tp.AddTransaction(0, createTestTx(1)))
		require.NoError(t, tp.AddTransaction(0, createTestTx(2)))
		assert.Equal(t, ErrPoolFull, tp.AddTransaction(0, createTestTx(3)))

		// other shards keep their own capacity
		assert.NoError(t, tp.AddTransaction(1, createTestTx(4)))
	})
}

func TestTransactionPool_PendingTransactions(t *testing.T) {
	t.Parallel()

	tp, _ := NewTransactionPool(10)
	for i := 0; i < 5; i++ {
		require.NoError(t, tp.AddTransaction(0, createTestTx(i)))
	}

	txs, err := tp.PendingTransactions(0)
	require.NoError(t, err)
	require.Len(t, txs, 5)

	// submission order is preserved
	for i, tx := range txs {
		assert.Equal(t, createTestTx(i).Hash, tx.Hash)
	}

	// unknown shard yields an empty batch, not an error
	txs, err = tp.PendingTransactions(7)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTransactionPool_RemoveProcessed(t *testing.T) {
	t.Parallel()

	tp, _ := NewTransactionPool(10)
	for i := 0; i < 4; i++ {
		require.NoError(t, tp.AddTransaction(0, createTestTx(i)))
	}

	tp.RemoveProcessed(0, []*block.Transaction{createTestTx(0), createTestTx(2), nil})
	assert.Equal(t, 2, tp.NumPending(0))

	txs, err := tp.PendingTransactions(0)
	require.NoError(t, err)
	assert.Equal(t, createTestTx(1).Hash, txs[0].Hash)
	assert.Equal(t, createTestTx(3).Hash, txs[1].Hash)

	// a removed transaction can be submitted again
	assert.NoError(t, tp.AddTransaction(0, createTestTx(0)))
	assert.Equal(t, 3, tp.NumPending(0))
}
