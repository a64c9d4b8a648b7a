package validators

import (
	"math/big"
	"sync"
)

// validator holds one staking identity together with its shard assignment and
// performance counters. The address is the identity key, unique within a pool.
type validator struct {
	address []byte
	pubKey  []byte

	mut                sync.RWMutex
	stake              *big.Int
	assignedShards     []uint32
	blocksProduced     uint64
	txsProcessed       uint64
	accumulatedRewards *big.Int
}

// NewValidator creates a new validator instance
func NewValidator(address []byte, pubKey []byte, stake *big.Int) (*validator, error) {
	if len(address) == 0 {
		return nil, ErrNilAddress
	}
	if len(pubKey) == 0 {
		return nil, ErrNilPubKey
	}
	if stake == nil {
		return nil, ErrNilStake
	}
	if stake.Sign() < 0 {
		return nil, ErrNegativeStake
	}

	return &validator{
		address:            address,
		pubKey:             pubKey,
		stake:              big.NewInt(0).Set(stake),
		assignedShards:     make([]uint32, 0),
		accumulatedRewards: big.NewInt(0),
	}, nil
}

// Address returns the validator's identity
func (v *validator) Address() []byte {
	return v.address
}

// PubKey returns the validator's public key
func (v *validator) PubKey() []byte {
	return v.pubKey
}

// Stake returns the validator's staked amount
func (v *validator) Stake() *big.Int {
	v.mut.RLock()
	defer v.mut.RUnlock()

	return big.NewInt(0).Set(v.stake)
}

// SetStake sets the validator's staked amount
func (v *validator) SetStake(stake *big.Int) error {
	if stake == nil {
		return ErrNilStake
	}
	if stake.Sign() < 0 {
		return ErrNegativeStake
	}

	v.mut.Lock()
	v.stake = big.NewInt(0).Set(stake)
	v.mut.Unlock()

	return nil
}

// AssignedShards returns the ordered shard identifiers this validator serves
func (v *validator) AssignedShards() []uint32 {
	v.mut.RLock()
	defer v.mut.RUnlock()

	shards := make([]uint32, len(v.assignedShards))
	copy(shards, v.assignedShards)

	return shards
}

// SetAssignedShards overwrites the validator's shard assignment
func (v *validator) SetAssignedShards(shards []uint32) {
	newShards := make([]uint32, len(shards))
	copy(newShards, shards)

	v.mut.Lock()
	v.assignedShards = newShards
	v.mut.Unlock()
}

// IsAssignedToShard returns true if the given shard is in the validator's assignment
func (v *validator) IsAssignedToShard(shardID uint32) bool {
	v.mut.RLock()
	defer v.mut.RUnlock()

	for _, shard := range v.assignedShards {
		if shard == shardID {
			return true
		}
	}

	return false
}

// BlocksProduced returns the number of blocks this validator has produced
func (v *validator) BlocksProduced() uint64 {
	v.mut.RLock()
	defer v.mut.RUnlock()

	return v.blocksProduced
}

// TxsProcessed returns the number of transactions this validator has processed
func (v *validator) TxsProcessed() uint64 {
	v.mut.RLock()
	defer v.mut.RUnlock()

	return v.txsProcessed
}

// AccumulatedRewards returns the total rewards accrued by this validator
func (v *validator) AccumulatedRewards() *big.Int {
	v.mut.RLock()
	defer v.mut.RUnlock()

	return big.NewInt(0).Set(v.accumulatedRewards)
}

// RegisterProducedBlock bumps the production counters and accrues the reward
// for one successfully produced block
func (v *validator) RegisterProducedBlock(numTxs uint64, reward *big.Int) {
	v.mut.Lock()
	defer v.mut.Unlock()

	v.blocksProduced++
	v.txsProcessed += numTxs
	if reward != nil {
		v.accumulatedRewards = big.NewInt(0).Add(v.accumulatedRewards, reward)
	}
}

// RestoreCounters overwrites the performance counters, used when reloading a
// saved registry after restart
func (v *validator) RestoreCounters(blocksProduced uint64, txsProcessed uint64, accumulatedRewards *big.Int) {
	v.mut.Lock()
	defer v.mut.Unlock()

	v.blocksProduced = blocksProduced
	v.txsProcessed = txsProcessed
	if accumulatedRewards == nil {
		accumulatedRewards = big.NewInt(0)
	}
	v.accumulatedRewards = big.NewInt(0).Set(accumulatedRewards)
}

// IsInterfaceNil returns true if there is no value under the interface
func (v *validator) IsInterfaceNil() bool {
	return v == nil
}
