package dpos

// EpochForHeight returns the epoch the given height belongs to. With an epoch
// length of zero the chain never leaves epoch 0.
func EpochForHeight(height uint64, blocksPerEpoch uint64) uint64 {
	if blocksPerEpoch == 0 {
		return 0
	}

	return height / blocksPerEpoch
}

// IsEpochStart returns true if the given height sits on an epoch boundary.
// Epoch boundaries are the only heights at which shard reassignment may occur.
func IsEpochStart(height uint64, blocksPerEpoch uint64) bool {
	if blocksPerEpoch == 0 {
		return false
	}

	return height%blocksPerEpoch == 0
}

// consensusState tracks the local chain position bound to one validator pool
// snapshot. The epoch is always derived from the height, never stored on its
// own. All fields are guarded by the owning engine's mutex; the struct itself
// carries no lock.
type consensusState struct {
	height             uint64
	lastBlockHash      []byte
	lastBlockTimeStamp uint64
	active             bool
	blocksPerEpoch     uint64
}

func newConsensusState(blocksPerEpoch uint64) *consensusState {
	return &consensusState{
		blocksPerEpoch: blocksPerEpoch,
	}
}

// Height returns the current consensus height, the height the next block is
// expected at
func (cs *consensusState) Height() uint64 {
	return cs.height
}

// Epoch returns the epoch derived from the current height
func (cs *consensusState) Epoch() uint64 {
	return EpochForHeight(cs.height, cs.blocksPerEpoch)
}

// LastBlockHash returns the hash of the last committed block
func (cs *consensusState) LastBlockHash() []byte {
	return cs.lastBlockHash
}

// LastBlockTimeStamp returns the timestamp of the last committed block
func (cs *consensusState) LastBlockTimeStamp() uint64 {
	return cs.lastBlockTimeStamp
}

// IsActive returns true once the engine finished its initialization
func (cs *consensusState) IsActive() bool {
	return cs.active
}

func (cs *consensusState) setActive(active bool) {
	cs.active = active
}

// setCommitted advances the chain position after a block was adopted. The
// height counter is monotonically non-decreasing.
func (cs *consensusState) setCommitted(height uint64, blockHash []byte, timeStamp uint64) {
	if height < cs.height {
		return
	}

	cs.height = height
	cs.lastBlockHash = blockHash
	cs.lastBlockTimeStamp = timeStamp
}

// restore overwrites the chain position with a previously saved one
func (cs *consensusState) restore(height uint64, blockHash []byte, timeStamp uint64) {
	cs.height = height
	cs.lastBlockHash = blockHash
	cs.lastBlockTimeStamp = timeStamp
}
