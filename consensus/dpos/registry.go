package dpos

import (
	"fmt"
	"math/big"
)

const registryKey = "consensusRegistry"

// validatorRegistryData is the persisted form of one validator record
type validatorRegistryData struct {
	Address            []byte   `json:"address"`
	PubKey             []byte   `json:"pubKey"`
	Stake              string   `json:"stake"`
	AssignedShards     []uint32 `json:"assignedShards"`
	BlocksProduced     uint64   `json:"blocksProduced"`
	TxsProcessed       uint64   `json:"txsProcessed"`
	AccumulatedRewards string   `json:"accumulatedRewards"`
}

// consensusRegistryData is the persisted form of the engine state: the chain
// head and the full validator registry
type consensusRegistryData struct {
	Height             uint64                   `json:"height"`
	Epoch              uint64                   `json:"epoch"`
	LastBlockHash      []byte                   `json:"lastBlockHash"`
	LastBlockTimeStamp uint64                   `json:"lastBlockTimeStamp"`
	Validators         []*validatorRegistryData `json:"validators"`
}

// saveStateUnprotected snapshots the consensus state and the validator
// registry into the boot storer. Callers hold the engine mutex.
func (e *dposConsensus) saveStateUnprotected() error {
	registry := &consensusRegistryData{
		Height:             e.state.Height(),
		Epoch:              e.state.Epoch(),
		LastBlockHash:      e.state.LastBlockHash(),
		LastBlockTimeStamp: e.state.LastBlockTimeStamp(),
	}

	for _, v := range e.pool.GetAllValidators() {
		registry.Validators = append(registry.Validators, &validatorRegistryData{
			Address:            v.Address(),
			PubKey:             v.PubKey(),
			Stake:              v.Stake().String(),
			AssignedShards:     v.AssignedShards(),
			BlocksProduced:     v.BlocksProduced(),
			TxsProcessed:       v.TxsProcessed(),
			AccumulatedRewards: v.AccumulatedRewards().String(),
		})
	}

	buff, err := e.marshalizer.Marshal(registry)
	if err != nil {
		return err
	}

	return e.bootStorer.Put([]byte(registryKey), buff)
}

// LoadState restores the engine from the last persisted registry snapshot:
// the chain head, the validator records and their counters. It returns
// ErrNoSavedState when the boot storer holds no snapshot.
func (e *dposConsensus) LoadState() error {
	e.mut.Lock()
	defer e.mut.Unlock()

	buff, err := e.bootStorer.Get([]byte(registryKey))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoSavedState, err.Error())
	}

	registry := &consensusRegistryData{}
	err = e.marshalizer.Unmarshal(registry, buff)
	if err != nil {
		return err
	}

	for _, record := range registry.Validators {
		stake, ok := big.NewInt(0).SetString(record.Stake, 10)
		if !ok {
			return fmt.Errorf("invalid saved stake %s for validator %x", record.Stake, record.Address)
		}
		rewards, ok := big.NewInt(0).SetString(record.AccumulatedRewards, 10)
		if !ok {
			return fmt.Errorf("invalid saved rewards %s for validator %x", record.AccumulatedRewards, record.Address)
		}

		err = e.pool.UpsertValidator(record.Address, record.PubKey, stake)
		if err != nil {
			return err
		}
		err = e.pool.SetAssignedShards(record.Address, record.AssignedShards)
		if err != nil {
			return err
		}
		err = e.pool.RestoreCounters(record.Address, record.BlocksProduced, record.TxsProcessed, rewards)
		if err != nil {
			return err
		}
	}

	e.state.restore(registry.Height, registry.LastBlockHash, registry.LastBlockTimeStamp)

	log.Info("consensus state restored",
		"height", registry.Height,
		"epoch", registry.Epoch,
		"num validators", len(registry.Validators))

	return nil
}
