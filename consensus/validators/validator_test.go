package validators

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	t.Parallel()

	t.Run("nil address should error", func(t *testing.T) {
		t.Parallel()

		v, err := NewValidator(nil, []byte("pubkey"), big.NewInt(100))

		assert.Nil(t, v)
		assert.Equal(t, ErrNilAddress, err)
	})
	t.Run("nil public key should error", func(t *testing.T) {
		t.Parallel()

		v, err := NewValidator([]byte("addr"), nil, big.NewInt(100))

		assert.Nil(t, v)
		assert.Equal(t, ErrNilPubKey, err)
	})
	t.Run("nil stake should error", func(t *testing.T) {
		t.Parallel()

		v, err := NewValidator([]byte("addr"), []byte("pubkey"), nil)

		assert.Nil(t, v)
		assert.Equal(t, ErrNilStake, err)
	})
	t.Run("negative stake should error", func(t *testing.T) {
		t.Parallel()

		v, err := NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(-1))

		assert.Nil(t, v)
		assert.Equal(t, ErrNegativeStake, err)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		v, err := NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(100))

		require.Nil(t, err)
		assert.Equal(t, []byte("addr"), v.Address())
		assert.Equal(t, []byte("pubkey"), v.PubKey())
		assert.Equal(t, big.NewInt(100), v.Stake())
		assert.Empty(t, v.AssignedShards())
		assert.Equal(t, uint64(0), v.BlocksProduced())
		assert.Equal(t, uint64(0), v.TxsProcessed())
		assert.Equal(t, big.NewInt(0), v.AccumulatedRewards())
	})
}

func TestValidator_StakeIsCopied(t *testing.T) {
	t.Parallel()

	initialStake := big.NewInt(100)
	v, err := NewValidator([]byte("addr"), []byte("pubkey"), initialStake)
	require.Nil(t, err)

	initialStake.SetInt64(999)
	assert.Equal(t, big.NewInt(100), v.Stake())

	read := v.Stake()
	read.SetInt64(777)
	assert.Equal(t, big.NewInt(100), v.Stake())
}

func TestValidator_SetStake(t *testing.T) {
	t.Parallel()

	v, err := NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(100))
	require.Nil(t, err)

	assert.Equal(t, ErrNilStake, v.SetStake(nil))
	assert.Equal(t, ErrNegativeStake, v.SetStake(big.NewInt(-5)))

	require.Nil(t, v.SetStake(big.NewInt(250)))
	assert.Equal(t, big.NewInt(250), v.Stake())
}

func TestValidator_AssignedShards(t *testing.T) {
	t.Parallel()

	v, err := NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(100))
	require.Nil(t, err)

	v.SetAssignedShards([]uint32{1, 3})

	assert.Equal(t, []uint32{1, 3}, v.AssignedShards())
	assert.True(t, v.IsAssignedToShard(1))
	assert.True(t, v.IsAssignedToShard(3))
	assert.False(t, v.IsAssignedToShard(0))

	read := v.AssignedShards()
	read[0] = 42
	assert.Equal(t, []uint32{1, 3}, v.AssignedShards())

	v.SetAssignedShards([]uint32{2})
	assert.Equal(t, []uint32{2}, v.AssignedShards())
}

func TestValidator_RegisterProducedBlock(t *testing.T) {
	t.Parallel()

	v, err := NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(100))
	require.Nil(t, err)

	v.RegisterProducedBlock(3, big.NewInt(50))
	v.RegisterProducedBlock(2, big.NewInt(25))
	v.RegisterProducedBlock(0, nil)

	assert.Equal(t, uint64(3), v.BlocksProduced())
	assert.Equal(t, uint64(5), v.TxsProcessed())
	assert.Equal(t, big.NewInt(75), v.AccumulatedRewards())
}

func TestValidator_RestoreCounters(t *testing.T) {
	t.Parallel()

	v, err := NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(100))
	require.Nil(t, err)

	v.RestoreCounters(10, 200, big.NewInt(12345))

	assert.Equal(t, uint64(10), v.BlocksProduced())
	assert.Equal(t, uint64(200), v.TxsProcessed())
	assert.Equal(t, big.NewInt(12345), v.AccumulatedRewards())
}

func TestValidator_IsInterfaceNil(t *testing.T) {
	t.Parallel()

	var v *validator
	assert.True(t, v.IsInterfaceNil())

	v, _ = NewValidator([]byte("addr"), []byte("pubkey"), big.NewInt(0))
	assert.False(t, v.IsInterfaceNil())
}
