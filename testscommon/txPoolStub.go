package testscommon

import (
	"github.com/polyshard/ps-chain-go/data/block"
)

// TxPoolStub -
type TxPoolStub struct {
	PendingTransactionsCalled func(shardID uint32) ([]*block.Transaction, error)
}

// PendingTransactions -
func (stub *TxPoolStub) PendingTransactions(shardID uint32) ([]*block.Transaction, error) {
	if stub.PendingTransactionsCalled != nil {
		return stub.PendingTransactionsCalled(shardID)
	}
	return make([]*block.Transaction, 0), nil
}

// IsInterfaceNil -
func (stub *TxPoolStub) IsInterfaceNil() bool {
	return stub == nil
}
