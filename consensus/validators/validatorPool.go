package validators

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"sync"

	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/polyshard/ps-chain-go/consensus"
)

var _ consensus.ValidatorPoolHandler = (*validatorPool)(nil)

var log = logger.GetOrCreate("consensus/validators")

// validatorPool owns every validator record. Storage order is irrelevant:
// every operation that indexes into the set first sorts the validators by
// address ascending, so independent processes holding the same logical pool
// contents compute bit-identical schedules.
type validatorPool struct {
	mut        sync.RWMutex
	validators map[string]*validator
}

// NewValidatorPool creates an empty validator pool
func NewValidatorPool() *validatorPool {
	return &validatorPool{
		validators: make(map[string]*validator),
	}
}

// AddValidator inserts a validator keyed by its address. Adding a validator
// with an address already present is an explicit upsert: the existing record
// is replaced and the replacement is logged.
func (vp *validatorPool) AddValidator(v *validator) error {
	if v == nil {
		return ErrNilValidator
	}

	vp.mut.Lock()
	defer vp.mut.Unlock()

	key := string(v.Address())
	_, exists := vp.validators[key]
	if exists {
		log.Debug("validator pool: replacing existing validator", "address", v.Address())
	}
	vp.validators[key] = v

	return nil
}

// GetValidator returns the validator registered under the given address
func (vp *validatorPool) GetValidator(address []byte) (consensus.ValidatorHandler, error) {
	v, err := vp.getValidator(address)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func (vp *validatorPool) getValidator(address []byte) (*validator, error) {
	vp.mut.RLock()
	defer vp.mut.RUnlock()

	v, ok := vp.validators[string(address)]
	if !ok {
		return nil, fmt.Errorf("%w, address %x", ErrValidatorNotFound, address)
	}

	return v, nil
}

// GetValidatorByPubKey linearly scans the pool and returns the first validator
// carrying the given public key. O(n) is acceptable for the pool sizes this
// chain runs with (tens to low hundreds of validators).
func (vp *validatorPool) GetValidatorByPubKey(pubKey []byte) (consensus.ValidatorHandler, error) {
	vp.mut.RLock()
	defer vp.mut.RUnlock()

	for _, v := range vp.sortedValidatorsUnprotected() {
		if bytes.Equal(v.PubKey(), pubKey) {
			return v, nil
		}
	}

	return nil, fmt.Errorf("%w, public key %x", ErrValidatorNotFound, pubKey)
}

// GetAllValidators returns every validator ordered by address ascending
func (vp *validatorPool) GetAllValidators() []consensus.ValidatorHandler {
	vp.mut.RLock()
	defer vp.mut.RUnlock()

	sorted := vp.sortedValidatorsUnprotected()
	handlers := make([]consensus.ValidatorHandler, 0, len(sorted))
	for _, v := range sorted {
		handlers = append(handlers, v)
	}

	return handlers
}

// NumValidators returns the number of registered validators
func (vp *validatorPool) NumValidators() int {
	vp.mut.RLock()
	defer vp.mut.RUnlock()

	return len(vp.validators)
}

// SetStake updates the stake of the validator registered under the given address
func (vp *validatorPool) SetStake(address []byte, stake *big.Int) error {
	v, err := vp.getValidator(address)
	if err != nil {
		return err
	}

	return v.SetStake(stake)
}

// RegisterProducedBlock bumps the counters of the validator registered under
// the given address after a successful block production
func (vp *validatorPool) RegisterProducedBlock(address []byte, numTxs uint64, reward *big.Int) error {
	v, err := vp.getValidator(address)
	if err != nil {
		return err
	}

	v.RegisterProducedBlock(numTxs, reward)

	return nil
}

// UpsertValidator creates a validator from its raw fields and inserts it,
// replacing any record registered under the same address
func (vp *validatorPool) UpsertValidator(address []byte, pubKey []byte, stake *big.Int) error {
	v, err := NewValidator(address, pubKey, stake)
	if err != nil {
		return err
	}

	return vp.AddValidator(v)
}

// SetAssignedShards overwrites the shard assignment of the validator
// registered under the given address
func (vp *validatorPool) SetAssignedShards(address []byte, shards []uint32) error {
	v, err := vp.getValidator(address)
	if err != nil {
		return err
	}

	v.SetAssignedShards(shards)

	return nil
}

// RestoreCounters overwrites the performance counters of the validator
// registered under the given address, used when reloading a saved registry
func (vp *validatorPool) RestoreCounters(address []byte, blocksProduced uint64, txsProcessed uint64, accumulatedRewards *big.Int) error {
	v, err := vp.getValidator(address)
	if err != nil {
		return err
	}

	v.RestoreCounters(blocksProduced, txsProcessed, accumulatedRewards)

	return nil
}

// AssignValidatorsToShards deterministically distributes the validators over
// the given number of shards: validators sorted by address ascending, the i-th
// one assigned to shard i mod shardCount. Any prior assignment is overwritten.
func (vp *validatorPool) AssignValidatorsToShards(shardCount uint32) error {
	if shardCount == 0 {
		return ErrInvalidNumberOfShards
	}

	vp.mut.Lock()
	defer vp.mut.Unlock()

	sorted := vp.sortedValidatorsUnprotected()
	if len(sorted) == 0 {
		return ErrEmptyValidatorPool
	}

	for i, v := range sorted {
		shardID := uint32(i) % shardCount
		v.SetAssignedShards([]uint32{shardID})
	}

	log.Debug("validators assigned to shards",
		"num validators", len(sorted),
		"num shards", shardCount)

	return nil
}

// SelectValidatorForBlock returns the leader elected for the given height and
// shard: the validators assigned to the shard, sorted by address ascending,
// indexed by height mod count
func (vp *validatorPool) SelectValidatorForBlock(height uint64, shardID uint32) (consensus.ValidatorHandler, error) {
	vp.mut.RLock()
	defer vp.mut.RUnlock()

	assigned := make([]*validator, 0)
	for _, v := range vp.validators {
		if v.IsAssignedToShard(shardID) {
			assigned = append(assigned, v)
		}
	}

	if len(assigned) == 0 {
		return nil, fmt.Errorf("%w, shard %d", ErrNoValidatorInShard, shardID)
	}

	sort.Slice(assigned, func(i, j int) bool {
		return bytes.Compare(assigned[i].Address(), assigned[j].Address()) < 0
	})

	idx := height % uint64(len(assigned))

	return assigned[idx], nil
}

// sortedValidatorsUnprotected returns the validators ordered by address
// ascending; the caller must hold the pool mutex
func (vp *validatorPool) sortedValidatorsUnprotected() []*validator {
	sorted := make([]*validator, 0, len(vp.validators))
	for _, v := range vp.validators {
		sorted = append(sorted, v)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Address(), sorted[j].Address()) < 0
	})

	return sorted
}

// IsInterfaceNil returns true if there is no value under the interface
func (vp *validatorPool) IsInterfaceNil() bool {
	return vp == nil
}
