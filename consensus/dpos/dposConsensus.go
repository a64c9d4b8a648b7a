package dpos

import (
	"bytes"
	"fmt"
	"math/big"
	"sync"

	"github.com/multiversx/mx-chain-core-go/core/check"
	crypto "github.com/multiversx/mx-chain-crypto-go"
	"github.com/multiversx/mx-chain-core-go/hashing"
	"github.com/multiversx/mx-chain-core-go/marshal"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/polyshard/ps-chain-go/config"
	"github.com/polyshard/ps-chain-go/consensus"
	"github.com/polyshard/ps-chain-go/data/block"
	"github.com/polyshard/ps-chain-go/storage"
)

var _ consensus.ConsensusHandler = (*dposConsensus)(nil)

var log = logger.GetOrCreate("consensus/dpos")

// ValidatorPoolManager defines the full surface the engine needs from the
// validator registry: the shared read surface plus the mutation funnels
type ValidatorPoolManager interface {
	consensus.ValidatorPoolHandler
	UpsertValidator(address []byte, pubKey []byte, stake *big.Int) error
	SetStake(address []byte, stake *big.Int) error
	SetAssignedShards(address []byte, shards []uint32) error
	RestoreCounters(address []byte, blocksProduced uint64, txsProcessed uint64, accumulatedRewards *big.Int) error
	RegisterProducedBlock(address []byte, numTxs uint64, reward *big.Int) error
	AssignValidatorsToShards(shardCount uint32) error
}

// ArgsDPoSConsensus holds all the dependencies required to create the DPoS
// consensus engine
type ArgsDPoSConsensus struct {
	ConsensusConfig    config.ConsensusConfig
	ValidatorPool      ValidatorPoolManager
	SelfAddress        []byte
	PrivateKey         crypto.PrivateKey
	KeyGenerator       crypto.KeyGenerator
	SingleSigner       crypto.SingleSigner
	Marshalizer        marshal.Marshalizer
	Hasher             hashing.Hasher
	TransactionPool    consensus.TransactionPoolHandler
	ProofProvider      consensus.ExecutionProofProvider
	RewardsHandler     consensus.RewardsHandler
	BootStorer         storage.Storer
	EpochStartNotifier consensus.EpochStartNotifier
	SyncTimer          consensus.SyncTimer
}

// dposConsensus orchestrates leader scheduling, block production and
// validation, finality and epoch-cadenced shard reassignment. Every operation
// runs under one engine mutex so a scheduling read can never observe a
// half-completed reassignment or height change.
type dposConsensus struct {
	mut                sync.RWMutex
	state              *consensusState
	pool               ValidatorPoolManager
	consensusConfig    config.ConsensusConfig
	selfAddress        []byte
	privateKey         crypto.PrivateKey
	keyGenerator       crypto.KeyGenerator
	singleSigner       crypto.SingleSigner
	marshalizer        marshal.Marshalizer
	hasher             hashing.Hasher
	txPool             consensus.TransactionPoolHandler
	proofProvider      consensus.ExecutionProofProvider
	rewardsHandler     consensus.RewardsHandler
	bootStorer         storage.Storer
	epochStartNotifier consensus.EpochStartNotifier
	syncTimer          consensus.SyncTimer

	// stake changes reported between epoch boundaries, applied at the next one
	pendingStakeChanges map[string]*big.Int
}

// NewDPoSConsensus creates an initialized DPoS consensus engine: it validates
// the configuration, performs the initial validator-to-shard assignment,
// persists the initial registry and marks the consensus state active
func NewDPoSConsensus(args ArgsDPoSConsensus) (*dposConsensus, error) {
	err := checkArgs(args)
	if err != nil {
		return nil, err
	}

	engine := &dposConsensus{
		state:               newConsensusState(args.ConsensusConfig.BlocksPerEpoch),
		pool:                args.ValidatorPool,
		consensusConfig:     args.ConsensusConfig,
		selfAddress:         args.SelfAddress,
		privateKey:          args.PrivateKey,
		keyGenerator:        args.KeyGenerator,
		singleSigner:        args.SingleSigner,
		marshalizer:         args.Marshalizer,
		hasher:              args.Hasher,
		txPool:              args.TransactionPool,
		proofProvider:       args.ProofProvider,
		rewardsHandler:      args.RewardsHandler,
		bootStorer:          args.BootStorer,
		epochStartNotifier:  args.EpochStartNotifier,
		syncTimer:           args.SyncTimer,
		pendingStakeChanges: make(map[string]*big.Int),
	}

	err = engine.pool.AssignValidatorsToShards(args.ConsensusConfig.ShardCount)
	if err != nil {
		return nil, err
	}

	// an existing snapshot belongs to a restarting node and must survive
	// until LoadState reads it
	if engine.bootStorer.Has([]byte(registryKey)) != nil {
		err = engine.saveStateUnprotected()
		if err != nil {
			return nil, err
		}
	}

	engine.state.setActive(true)

	log.Info("dpos consensus engine initialized",
		"num validators", engine.pool.NumValidators(),
		"shard count", args.ConsensusConfig.ShardCount,
		"blocks per epoch", args.ConsensusConfig.BlocksPerEpoch,
		"self address", args.SelfAddress)

	return engine, nil
}

func checkArgs(args ArgsDPoSConsensus) error {
	if args.ConsensusConfig.ShardCount == 0 {
		return ErrInvalidShardCount
	}
	if check.IfNil(args.ValidatorPool) {
		return ErrNilValidatorPool
	}
	if args.ValidatorPool.NumValidators() == 0 {
		return ErrEmptyValidatorPool
	}
	if len(args.SelfAddress) == 0 {
		return ErrNilSelfAddress
	}
	if check.IfNil(args.PrivateKey) {
		return ErrNilPrivateKey
	}
	if check.IfNil(args.KeyGenerator) {
		return ErrNilKeyGenerator
	}
	if check.IfNil(args.SingleSigner) {
		return ErrNilSingleSigner
	}
	if check.IfNil(args.Marshalizer) {
		return ErrNilMarshalizer
	}
	if check.IfNil(args.Hasher) {
		return ErrNilHasher
	}
	if check.IfNil(args.TransactionPool) {
		return ErrNilTransactionPool
	}
	if check.IfNil(args.ProofProvider) {
		return ErrNilExecutionProofProvider
	}
	if check.IfNil(args.RewardsHandler) {
		return ErrNilRewardsHandler
	}
	if check.IfNil(args.BootStorer) {
		return ErrNilBootStorer
	}
	if check.IfNil(args.EpochStartNotifier) {
		return ErrNilEpochStartNotifier
	}
	if check.IfNil(args.SyncTimer) {
		return ErrNilSyncTimer
	}

	return nil
}

// IsScheduledProducer returns true if the local validator is the elected
// producer for the given height and shard
func (e *dposConsensus) IsScheduledProducer(height uint64, shardID uint32) bool {
	e.mut.RLock()
	defer e.mut.RUnlock()

	selected, err := e.pool.SelectValidatorForBlock(height, shardID)
	if err != nil {
		log.Debug("no producer could be selected",
			"height", height,
			"shard", shardID,
			"error", err.Error())
		return false
	}

	return bytes.Equal(selected.Address(), e.selfAddress)
}

// ProduceBlock assembles, proves and signs a new single-shard block for the
// given height. It fails if the local validator is not the scheduled leader
// or if the shard is not covered by the current configuration.
func (e *dposConsensus) ProduceBlock(height uint64, shardID uint32) (*block.Block, error) {
	e.mut.RLock()
	defer e.mut.RUnlock()

	if shardID >= e.consensusConfig.ShardCount {
		return nil, fmt.Errorf("%w: shard %d, shard count %d",
			ErrInvalidShardID, shardID, e.consensusConfig.ShardCount)
	}

	selected, err := e.pool.SelectValidatorForBlock(height, shardID)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(selected.Address(), e.selfAddress) {
		return nil, fmt.Errorf("%w: height %d, shard %d, elected %x",
			ErrNotScheduledProducer, height, shardID, selected.Address())
	}

	txs, err := e.txPool.PendingTransactions(shardID)
	if err != nil {
		return nil, err
	}

	proof, err := e.proofProvider.ComputeProof(shardID, txs)
	if err != nil {
		return nil, err
	}

	header := &block.Header{
		Nonce:     height,
		TimeStamp: uint64(e.syncTimer.CurrentTime().Unix()),
		PrevHash:  e.state.LastBlockHash(),
		Producer:  e.selfAddress,
		ShardIDs:  []uint32{shardID},
	}
	producedBlock := &block.Block{
		Header: header,
		ShardData: []*block.ShardData{
			{
				ShardID:        shardID,
				Transactions:   txs,
				ExecutionProof: proof,
			},
		},
	}

	payload, err := producedBlock.SignablePayload(e.marshalizer)
	if err != nil {
		return nil, err
	}

	signature, err := e.singleSigner.Sign(e.privateKey, payload)
	if err != nil {
		return nil, err
	}
	producedBlock.ShardData[0].Signature = signature

	log.Debug("block produced",
		"height", height,
		"shard", shardID,
		"num txs", len(txs))

	return producedBlock, nil
}

// ValidateBlock checks a received block against the local consensus state.
// Checks run in a fixed order and every rejection names the failed check:
// structural integrity, exact height match, covered shards, elected producer,
// chain linkage, then producer signature. Local state is never mutated here.
func (e *dposConsensus) ValidateBlock(b *block.Block) error {
	e.mut.RLock()
	defer e.mut.RUnlock()

	if b == nil {
		return ErrNilBlock
	}
	err := b.CheckIntegrity()
	if err != nil {
		return err
	}

	currentHeight := e.state.Height()
	if b.Header.Nonce != currentHeight {
		return fmt.Errorf("%w: block height %d, expected %d",
			ErrWrongBlockHeight, b.Header.Nonce, currentHeight)
	}

	for _, shardID := range b.Header.ShardIDs {
		if shardID >= e.consensusConfig.ShardCount {
			return fmt.Errorf("%w: shard %d, shard count %d",
				ErrInvalidShardID, shardID, e.consensusConfig.ShardCount)
		}

		selected, errSelect := e.pool.SelectValidatorForBlock(b.Header.Nonce, shardID)
		if errSelect != nil {
			return errSelect
		}
		if !bytes.Equal(selected.Address(), b.Header.Producer) {
			return fmt.Errorf("%w: shard %d, declared %x, elected %x",
				ErrUnauthorizedProducer, shardID, b.Header.Producer, selected.Address())
		}
	}

	if !bytes.Equal(b.Header.PrevHash, e.state.LastBlockHash()) {
		return fmt.Errorf("%w: block previous hash %x, local chain head %x",
			ErrInvalidPreviousHash, b.Header.PrevHash, e.state.LastBlockHash())
	}

	err = e.verifyBlockSignatures(b)
	if err != nil {
		return err
	}

	return nil
}

func (e *dposConsensus) verifyBlockSignatures(b *block.Block) error {
	producer, err := e.pool.GetValidator(b.Header.Producer)
	if err != nil {
		return err
	}

	producerPubKey, err := e.keyGenerator.PublicKeyFromByteArray(producer.PubKey())
	if err != nil {
		return err
	}

	payload, err := b.SignablePayload(e.marshalizer)
	if err != nil {
		return err
	}

	for _, sd := range b.ShardData {
		err = e.singleSigner.Verify(producerPubKey, payload, sd.Signature)
		if err != nil {
			return fmt.Errorf("%w: shard %d, %s", ErrInvalidSignature, sd.ShardID, err.Error())
		}
	}

	return nil
}

// CommitBlock adopts a block: it advances the consensus height, records the
// new chain head, credits the producer and persists the registry. When the
// new height opens an epoch, shard reassignment runs and subscribers are
// notified before the call returns, so no scheduling query for that height
// can observe the stale assignment. A persistence failure is a state error:
// the caller should stop producing and validating on it.
func (e *dposConsensus) CommitBlock(b *block.Block) error {
	e.mut.Lock()
	defer e.mut.Unlock()

	if b == nil {
		return ErrNilBlock
	}
	err := b.CheckIntegrity()
	if err != nil {
		return err
	}
	if b.Header.Nonce != e.state.Height() {
		return fmt.Errorf("%w: block height %d, expected %d",
			ErrWrongBlockHeight, b.Header.Nonce, e.state.Height())
	}

	blockHash, err := b.ComputeHash(e.marshalizer, e.hasher)
	if err != nil {
		return err
	}

	reward := e.rewardsHandler.ComputeBlockReward(b)
	leaderShare := e.rewardsHandler.LeaderShare(reward)
	err = e.pool.RegisterProducedBlock(b.Header.Producer, b.TxCount(), leaderShare)
	if err != nil {
		return err
	}

	newHeight := b.Header.Nonce + 1
	e.state.setCommitted(newHeight, blockHash, b.Header.TimeStamp)

	log.Debug("block committed",
		"height", b.Header.Nonce,
		"hash", blockHash,
		"producer", b.Header.Producer,
		"reward", reward)

	if IsEpochStart(newHeight, e.consensusConfig.BlocksPerEpoch) {
		err = e.updateValidatorsUnprotected()
		if err != nil {
			return err
		}

		newEpoch := EpochForHeight(newHeight, e.consensusConfig.BlocksPerEpoch)
		log.Info("epoch started", "epoch", newEpoch, "height", newHeight)
		e.epochStartNotifier.NotifyAll(newEpoch)
	}

	return e.saveStateUnprotected()
}

// IsFinal returns true if the block is buried under at least the configured
// number of confirmations
func (e *dposConsensus) IsFinal(b *block.Block) bool {
	e.mut.RLock()
	defer e.mut.RUnlock()

	if b == nil || b.Header == nil {
		return false
	}

	currentHeight := e.state.Height()
	if b.Header.Nonce > currentHeight {
		return false
	}

	return currentHeight-b.Header.Nonce >= e.consensusConfig.FinalityConfirmations
}

// GetNextValidator exposes the leader selection algorithm read-only, for
// display and query use
func (e *dposConsensus) GetNextValidator(height uint64, shardID uint32) (consensus.ValidatorHandler, error) {
	e.mut.RLock()
	defer e.mut.RUnlock()

	return e.pool.SelectValidatorForBlock(height, shardID)
}

// UpdateValidators applies the stake changes reported since the last epoch
// boundary and re-runs the validator-to-shard assignment
func (e *dposConsensus) UpdateValidators() error {
	e.mut.Lock()
	defer e.mut.Unlock()

	return e.updateValidatorsUnprotected()
}

func (e *dposConsensus) updateValidatorsUnprotected() error {
	for address, stake := range e.pendingStakeChanges {
		err := e.pool.SetStake([]byte(address), stake)
		if err != nil {
			log.Warn("could not apply stake change",
				"address", []byte(address),
				"error", err.Error())
		}
	}
	e.pendingStakeChanges = make(map[string]*big.Int)

	return e.pool.AssignValidatorsToShards(e.consensusConfig.ShardCount)
}

// NotifyStakeChange records an externally reported stake change. The change
// only becomes visible to leader selection at the next epoch boundary.
func (e *dposConsensus) NotifyStakeChange(address []byte, newStake *big.Int) {
	if len(address) == 0 || newStake == nil {
		return
	}

	e.mut.Lock()
	e.pendingStakeChanges[string(address)] = big.NewInt(0).Set(newStake)
	e.mut.Unlock()
}

// CalculateBlockReward returns the raw reward of the given block under the
// configured schedule
func (e *dposConsensus) CalculateBlockReward(b *block.Block) *big.Int {
	return e.rewardsHandler.ComputeBlockReward(b)
}

// GetValidatorPool returns the validator registry read surface
func (e *dposConsensus) GetValidatorPool() consensus.ValidatorPoolHandler {
	return e.pool
}

// GetValidatorByPubKey returns the validator carrying the given public key
func (e *dposConsensus) GetValidatorByPubKey(pubKey []byte) (consensus.ValidatorHandler, error) {
	e.mut.RLock()
	defer e.mut.RUnlock()

	return e.pool.GetValidatorByPubKey(pubKey)
}

// CurrentHeight returns the height the next block is expected at
func (e *dposConsensus) CurrentHeight() uint64 {
	e.mut.RLock()
	defer e.mut.RUnlock()

	return e.state.Height()
}

// CurrentEpoch returns the epoch derived from the current height
func (e *dposConsensus) CurrentEpoch() uint64 {
	e.mut.RLock()
	defer e.mut.RUnlock()

	return e.state.Epoch()
}

// IsInterfaceNil returns true if there is no value under the interface
func (e *dposConsensus) IsInterfaceNil() bool {
	return e == nil
}
