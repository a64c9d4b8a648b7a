package testscommon

import (
	"github.com/polyshard/ps-chain-go/consensus"
)

// EpochStartNotifierStub -
type EpochStartNotifierStub struct {
	RegisterHandlerCalled   func(handler consensus.EpochStartActionHandler)
	UnregisterHandlerCalled func(handler consensus.EpochStartActionHandler)
	NotifyAllCalled         func(epoch uint64)
}

// RegisterHandler -
func (stub *EpochStartNotifierStub) RegisterHandler(handler consensus.EpochStartActionHandler) {
	if stub.RegisterHandlerCalled != nil {
		stub.RegisterHandlerCalled(handler)
	}
}

// UnregisterHandler -
func (stub *EpochStartNotifierStub) UnregisterHandler(handler consensus.EpochStartActionHandler) {
	if stub.UnregisterHandlerCalled != nil {
		stub.UnregisterHandlerCalled(handler)
	}
}

// NotifyAll -
func (stub *EpochStartNotifierStub) NotifyAll(epoch uint64) {
	if stub.NotifyAllCalled != nil {
		stub.NotifyAllCalled(epoch)
	}
}

// IsInterfaceNil -
func (stub *EpochStartNotifierStub) IsInterfaceNil() bool {
	return stub == nil
}
