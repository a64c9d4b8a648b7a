package testscommon

import (
	"math/big"

	"github.com/polyshard/ps-chain-go/data/block"
)

// RewardsHandlerStub -
type RewardsHandlerStub struct {
	ComputeBlockRewardCalled func(b *block.Block) *big.Int
	LeaderShareCalled        func(reward *big.Int) *big.Int
	CommunityShareCalled     func(reward *big.Int) *big.Int
	ValidationRewardCalled   func() *big.Int
}

// ComputeBlockReward -
func (stub *RewardsHandlerStub) ComputeBlockReward(b *block.Block) *big.Int {
	if stub.ComputeBlockRewardCalled != nil {
		return stub.ComputeBlockRewardCalled(b)
	}
	return big.NewInt(0)
}

// LeaderShare -
func (stub *RewardsHandlerStub) LeaderShare(reward *big.Int) *big.Int {
	if stub.LeaderShareCalled != nil {
		return stub.LeaderShareCalled(reward)
	}
	return big.NewInt(0)
}

// CommunityShare -
func (stub *RewardsHandlerStub) CommunityShare(reward *big.Int) *big.Int {
	if stub.CommunityShareCalled != nil {
		return stub.CommunityShareCalled(reward)
	}
	return big.NewInt(0)
}

// ValidationReward -
func (stub *RewardsHandlerStub) ValidationReward() *big.Int {
	if stub.ValidationRewardCalled != nil {
		return stub.ValidationRewardCalled()
	}
	return big.NewInt(0)
}

// IsInterfaceNil -
func (stub *RewardsHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
