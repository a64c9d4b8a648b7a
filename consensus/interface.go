package consensus

import (
	"math/big"
	"time"

	"github.com/polyshard/ps-chain-go/data/block"
)

// ValidatorHandler defines the read surface of a single staking identity
type ValidatorHandler interface {
	Address() []byte
	PubKey() []byte
	Stake() *big.Int
	AssignedShards() []uint32
	BlocksProduced() uint64
	TxsProcessed() uint64
	AccumulatedRewards() *big.Int
	IsInterfaceNil() bool
}

// ValidatorPoolHandler defines the read surface of the validator registry,
// exposed downstream to node-hierarchy and display layers
type ValidatorPoolHandler interface {
	GetValidator(address []byte) (ValidatorHandler, error)
	GetValidatorByPubKey(pubKey []byte) (ValidatorHandler, error)
	GetAllValidators() []ValidatorHandler
	SelectValidatorForBlock(height uint64, shardID uint32) (ValidatorHandler, error)
	NumValidators() int
	IsInterfaceNil() bool
}

// ConsensusHandler defines the capability contract any consensus algorithm
// implementation must expose. Keeping callers behind this interface allows
// substituting alternative algorithms or test doubles without touching them.
type ConsensusHandler interface {
	IsScheduledProducer(height uint64, shardID uint32) bool
	ProduceBlock(height uint64, shardID uint32) (*block.Block, error)
	ValidateBlock(b *block.Block) error
	CommitBlock(b *block.Block) error
	IsFinal(b *block.Block) bool
	GetNextValidator(height uint64, shardID uint32) (ValidatorHandler, error)
	UpdateValidators() error
	NotifyStakeChange(address []byte, newStake *big.Int)
	CalculateBlockReward(b *block.Block) *big.Int
	GetValidatorPool() ValidatorPoolHandler
	GetValidatorByPubKey(pubKey []byte) (ValidatorHandler, error)
	CurrentHeight() uint64
	CurrentEpoch() uint64
	IsInterfaceNil() bool
}

// TransactionPoolHandler provides the pending transactions for a given shard.
// Eviction and ordering policy belong to the pool, not to consensus.
type TransactionPoolHandler interface {
	PendingTransactions(shardID uint32) ([]*block.Transaction, error)
	IsInterfaceNil() bool
}

// ExecutionProofProvider computes the opaque execution proof for a shard's
// transaction batch
type ExecutionProofProvider interface {
	ComputeProof(shardID uint32, txs []*block.Transaction) ([]byte, error)
	IsInterfaceNil() bool
}

// EpochStartActionHandler defines what a component subscribed to epoch start
// events should do
type EpochStartActionHandler interface {
	EpochStartAction(epoch uint64)
}

// EpochStartNotifier defines the subscription surface for epoch start events
type EpochStartNotifier interface {
	RegisterHandler(handler EpochStartActionHandler)
	UnregisterHandler(handler EpochStartActionHandler)
	NotifyAll(epoch uint64)
	IsInterfaceNil() bool
}

// SyncTimer provides the network-adjusted wall clock used to stamp produced
// blocks
type SyncTimer interface {
	CurrentTime() time.Time
	ClockOffset() time.Duration
	IsInterfaceNil() bool
}

// RewardsHandler converts produced blocks into reward amounts under the
// configured schedule
type RewardsHandler interface {
	ComputeBlockReward(b *block.Block) *big.Int
	LeaderShare(reward *big.Int) *big.Int
	CommunityShare(reward *big.Int) *big.Int
	ValidationReward() *big.Int
	IsInterfaceNil() bool
}
