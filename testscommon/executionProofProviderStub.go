package testscommon

import (
	"github.com/polyshard/ps-chain-go/data/block"
)

// ExecutionProofProviderStub -
type ExecutionProofProviderStub struct {
	ComputeProofCalled func(shardID uint32, txs []*block.Transaction) ([]byte, error)
}

// ComputeProof -
func (stub *ExecutionProofProviderStub) ComputeProof(shardID uint32, txs []*block.Transaction) ([]byte, error) {
	if stub.ComputeProofCalled != nil {
		return stub.ComputeProofCalled(shardID, txs)
	}
	return []byte("proof"), nil
}

// IsInterfaceNil -
func (stub *ExecutionProofProviderStub) IsInterfaceNil() bool {
	return stub == nil
}
