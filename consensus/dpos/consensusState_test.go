package dpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochForHeight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), EpochForHeight(0, 10))
	assert.Equal(t, uint64(0), EpochForHeight(9, 10))
	assert.Equal(t, uint64(1), EpochForHeight(10, 10))
	assert.Equal(t, uint64(1), EpochForHeight(19, 10))
	assert.Equal(t, uint64(2), EpochForHeight(20, 10))

	// a zero epoch length means epochs are disabled and everything is epoch 0
	assert.Equal(t, uint64(0), EpochForHeight(0, 0))
	assert.Equal(t, uint64(0), EpochForHeight(123456, 0))
}

func TestIsEpochStart(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEpochStart(0, 10))
	assert.False(t, IsEpochStart(1, 10))
	assert.False(t, IsEpochStart(9, 10))
	assert.True(t, IsEpochStart(10, 10))
	assert.True(t, IsEpochStart(20, 10))

	assert.False(t, IsEpochStart(0, 0))
	assert.False(t, IsEpochStart(10, 0))
}

func TestConsensusState_SetCommitted(t *testing.T) {
	t.Parallel()

	cs := newConsensusState(10)
	assert.Equal(t, uint64(0), cs.Height())

	cs.setCommitted(1, []byte("hash 0"), 100)
	assert.Equal(t, uint64(1), cs.Height())
	assert.Equal(t, []byte("hash 0"), cs.LastBlockHash())
	assert.Equal(t, uint64(100), cs.LastBlockTimeStamp())

	// committed height can never move backwards
	cs.setCommitted(0, []byte("stale"), 50)
	assert.Equal(t, uint64(1), cs.Height())
	assert.Equal(t, []byte("hash 0"), cs.LastBlockHash())
}

func TestConsensusState_Epoch(t *testing.T) {
	t.Parallel()

	cs := newConsensusState(5)
	assert.Equal(t, uint64(0), cs.Epoch())

	cs.setCommitted(7, []byte("hash"), 100)
	assert.Equal(t, uint64(1), cs.Epoch())

	cs.setCommitted(10, []byte("hash 2"), 110)
	assert.Equal(t, uint64(2), cs.Epoch())
}

func TestConsensusState_Restore(t *testing.T) {
	t.Parallel()

	cs := newConsensusState(10)
	cs.restore(42, []byte("restored hash"), 999)

	assert.Equal(t, uint64(42), cs.Height())
	assert.Equal(t, []byte("restored hash"), cs.LastBlockHash())
	assert.Equal(t, uint64(999), cs.LastBlockTimeStamp())
	assert.Equal(t, uint64(4), cs.Epoch())
}
