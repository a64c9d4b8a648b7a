package economics

import (
	"fmt"
	"math"
	"math/big"

	"github.com/multiversx/mx-chain-core-go/core"

	"github.com/polyshard/ps-chain-go/config"
	"github.com/polyshard/ps-chain-go/consensus"
	"github.com/polyshard/ps-chain-go/data/block"
)

var _ consensus.RewardsHandler = (*rewardsData)(nil)

const float64EqualityThreshold = 1e-9
const conversionBase = 10

// rewardsData holds the reward schedule applied to produced blocks
type rewardsData struct {
	baseBlockReward       *big.Int
	perTransactionReward  *big.Int
	validationReward      *big.Int
	halvingIntervalBlocks uint64
	leaderPercentage      float64
	communityPercentage   float64
}

// NewRewardsData creates a reward schedule from the economics configuration
func NewRewardsData(economics config.EconomicsConfig) (*rewardsData, error) {
	rewards := economics.RewardsSettings

	baseBlockReward, ok := big.NewInt(0).SetString(rewards.BaseBlockReward, conversionBase)
	if !ok || baseBlockReward.Sign() < 0 {
		return nil, fmt.Errorf("%w: BaseBlockReward=%s", ErrInvalidRewardsValue, rewards.BaseBlockReward)
	}

	perTransactionReward, ok := big.NewInt(0).SetString(rewards.PerTransactionReward, conversionBase)
	if !ok || perTransactionReward.Sign() < 0 {
		return nil, fmt.Errorf("%w: PerTransactionReward=%s", ErrInvalidRewardsValue, rewards.PerTransactionReward)
	}

	validationReward, ok := big.NewInt(0).SetString(rewards.ValidationReward, conversionBase)
	if !ok || validationReward.Sign() < 0 {
		return nil, fmt.Errorf("%w: ValidationReward=%s", ErrInvalidRewardsValue, rewards.ValidationReward)
	}

	err := checkPercentages(rewards)
	if err != nil {
		return nil, err
	}

	return &rewardsData{
		baseBlockReward:       baseBlockReward,
		perTransactionReward:  perTransactionReward,
		validationReward:      validationReward,
		halvingIntervalBlocks: rewards.HalvingIntervalBlocks,
		leaderPercentage:      rewards.LeaderPercentage,
		communityPercentage:   rewards.CommunityPercentage,
	}, nil
}

func checkPercentages(rewards config.RewardsSettings) error {
	if isPercentageInvalid(rewards.LeaderPercentage) {
		return fmt.Errorf("%w: LeaderPercentage=%f", ErrInvalidRewardsPercentage, rewards.LeaderPercentage)
	}
	if isPercentageInvalid(rewards.CommunityPercentage) {
		return fmt.Errorf("%w: CommunityPercentage=%f", ErrInvalidRewardsPercentage, rewards.CommunityPercentage)
	}

	sum := rewards.LeaderPercentage + rewards.CommunityPercentage
	if sum > 1.0+float64EqualityThreshold {
		return fmt.Errorf("%w: percentages sum to %f", ErrInvalidRewardsPercentage, sum)
	}

	return nil
}

func isPercentageInvalid(percentage float64) bool {
	isLessThanZero := percentage < 0.0
	isGreaterThanOne := percentage > 1.0+float64EqualityThreshold
	isNaN := math.IsNaN(percentage)

	return isLessThanZero || isGreaterThanOne || isNaN
}

// ComputeBlockReward returns the raw reward of one produced block under the
// current schedule values: the base block reward plus the per-transaction
// reward applied to every transaction across all shard sections. The halving
// cadence is applied by the block scheduler, never here.
func (rd *rewardsData) ComputeBlockReward(b *block.Block) *big.Int {
	if b == nil {
		return big.NewInt(0)
	}

	txRewards := big.NewInt(0).Mul(rd.perTransactionReward, big.NewInt(0).SetUint64(b.TxCount()))

	return big.NewInt(0).Add(rd.baseBlockReward, txRewards)
}

// LeaderShare returns the part of a block reward accrued by the producing
// validator, per the configured split table
func (rd *rewardsData) LeaderShare(reward *big.Int) *big.Int {
	if reward == nil {
		return big.NewInt(0)
	}

	return core.GetApproximatePercentageOfValue(reward, rd.leaderPercentage)
}

// CommunityShare returns the part of a block reward not accrued by the leader.
// It is computed as the remainder so that leader and community shares always
// recompose the full reward despite integer truncation.
func (rd *rewardsData) CommunityShare(reward *big.Int) *big.Int {
	if reward == nil {
		return big.NewInt(0)
	}

	return big.NewInt(0).Sub(reward, rd.LeaderShare(reward))
}

// ValidationReward returns the flat reward accrued for validating a block
func (rd *rewardsData) ValidationReward() *big.Int {
	return big.NewInt(0).Set(rd.validationReward)
}

// BaseBlockReward returns the configured base reward of one block
func (rd *rewardsData) BaseBlockReward() *big.Int {
	return big.NewInt(0).Set(rd.baseBlockReward)
}

// PerTransactionReward returns the configured reward of one processed transaction
func (rd *rewardsData) PerTransactionReward() *big.Int {
	return big.NewInt(0).Set(rd.perTransactionReward)
}

// HalvingIntervalBlocks returns the configured halving cadence in blocks
func (rd *rewardsData) HalvingIntervalBlocks() uint64 {
	return rd.halvingIntervalBlocks
}

// LeaderPercentage returns the configured leader share of a block reward
func (rd *rewardsData) LeaderPercentage() float64 {
	return rd.leaderPercentage
}

// IsInterfaceNil returns true if there is no value under the interface
func (rd *rewardsData) IsInterfaceNil() bool {
	return rd == nil
}
