package block_test

import (
	"testing"

	"github.com/multiversx/mx-chain-core-go/hashing/blake2b"
	"github.com/multiversx/mx-chain-core-go/marshal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyshard/ps-chain-go/data/block"
)

func createTestBlock() *block.Block {
	return &block.Block{
		Header: &block.Header{
			Nonce:     7,
			TimeStamp: 100,
			PrevHash:  []byte("prev hash"),
			Producer:  []byte("validator-1"),
			ShardIDs:  []uint32{0, 2},
		},
		ShardData: []*block.ShardData{
			{
				ShardID: 0,
				Transactions: []*block.Transaction{
					{Hash: []byte("tx1"), Payload: []byte("payload1")},
					{Hash: []byte("tx2"), Payload: []byte("payload2")},
				},
				ExecutionProof: []byte("proof0"),
				Signature:      []byte("sig0"),
			},
			{
				ShardID: 2,
				Transactions: []*block.Transaction{
					{Hash: []byte("tx3"), Payload: []byte("payload3")},
				},
				ExecutionProof: []byte("proof2"),
				Signature:      []byte("sig2"),
			},
		},
	}
}

func TestBlock_TxCount(t *testing.T) {
	t.Parallel()

	b := createTestBlock()

	assert.Equal(t, uint64(3), b.TxCount())
}

func TestBlock_CheckIntegrity(t *testing.T) {
	t.Parallel()

	t.Run("valid block should work", func(t *testing.T) {
		t.Parallel()

		b := createTestBlock()

		assert.Nil(t, b.CheckIntegrity())
	})
	t.Run("nil header should error", func(t *testing.T) {
		t.Parallel()

		b := createTestBlock()
		b.Header = nil

		assert.Equal(t, block.ErrNilBlockHeader, b.CheckIntegrity())
	})
	t.Run("no covered shards should error", func(t *testing.T) {
		t.Parallel()

		b := createTestBlock()
		b.Header.ShardIDs = nil

		assert.Equal(t, block.ErrNoCoveredShards, b.CheckIntegrity())
	})
	t.Run("missing shard section should error", func(t *testing.T) {
		t.Parallel()

		b := createTestBlock()
		b.ShardData = b.ShardData[:1]

		assert.Equal(t, block.ErrShardDataMismatch, b.CheckIntegrity())
	})
	t.Run("reordered shard section should error", func(t *testing.T) {
		t.Parallel()

		b := createTestBlock()
		b.ShardData[0], b.ShardData[1] = b.ShardData[1], b.ShardData[0]

		assert.Equal(t, block.ErrShardDataMismatch, b.CheckIntegrity())
	})
}

func TestBlock_SignablePayloadIgnoresSignatures(t *testing.T) {
	t.Parallel()

	marshalizer := &marshal.JsonMarshalizer{}

	b1 := createTestBlock()
	b2 := createTestBlock()
	b2.ShardData[0].Signature = []byte("a completely different signature")
	b2.ShardData[1].Signature = nil

	payload1, err := b1.SignablePayload(marshalizer)
	require.Nil(t, err)
	payload2, err := b2.SignablePayload(marshalizer)
	require.Nil(t, err)

	assert.Equal(t, payload1, payload2)

	b2.Header.Nonce++
	payload3, err := b2.SignablePayload(marshalizer)
	require.Nil(t, err)

	assert.NotEqual(t, payload1, payload3)
}

func TestBlock_ComputeHash(t *testing.T) {
	t.Parallel()

	marshalizer := &marshal.JsonMarshalizer{}
	hasher := blake2b.NewBlake2b()

	b := createTestBlock()

	hash1, err := b.ComputeHash(marshalizer, hasher)
	require.Nil(t, err)
	require.NotEmpty(t, hash1)

	hash2, err := b.ComputeHash(marshalizer, hasher)
	require.Nil(t, err)
	assert.Equal(t, hash1, hash2)

	b.Header.TimeStamp++
	hash3, err := b.ComputeHash(marshalizer, hasher)
	require.Nil(t, err)
	assert.NotEqual(t, hash1, hash3)
}
