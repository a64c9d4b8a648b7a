package pool

import (
	"sync"

	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/polyshard/ps-chain-go/consensus"
	"github.com/polyshard/ps-chain-go/data/block"
)

var _ consensus.TransactionPoolHandler = (*transactionPool)(nil)

var log = logger.GetOrCreate("process/pool")

// transactionPool keeps per-shard FIFO queues of pending transactions.
// Arrival order is preserved because produced blocks carry the shard's
// transactions in submission order.
type transactionPool struct {
	mut      sync.RWMutex
	capacity int
	pending  map[uint32][]*block.Transaction
	seen     map[string]struct{}
}

// NewTransactionPool creates an in-memory transaction pool with the given
// per-shard capacity
func NewTransactionPool(capacity int) (*transactionPool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &transactionPool{
		capacity: capacity,
		pending:  make(map[uint32][]*block.Transaction),
		seen:     make(map[string]struct{}),
	}, nil
}

// AddTransaction queues a transaction for the given shard. Duplicates by
// hash are silently ignored.
func (tp *transactionPool) AddTransaction(shardID uint32, tx *block.Transaction) error {
	if tx == nil {
		return ErrNilTransaction
	}

	tp.mut.Lock()
	defer tp.mut.Unlock()

	if _, found := tp.seen[string(tx.Hash)]; found {
		return nil
	}
	if len(tp.pending[shardID]) >= tp.capacity {
		return ErrPoolFull
	}

	tp.pending[shardID] = append(tp.pending[shardID], tx)
	tp.seen[string(tx.Hash)] = struct{}{}

	return nil
}

// PendingTransactions returns a copy of the shard's pending queue in
// submission order
func (tp *transactionPool) PendingTransactions(shardID uint32) ([]*block.Transaction, error) {
	tp.mut.RLock()
	defer tp.mut.RUnlock()

	queue := tp.pending[shardID]
	txs := make([]*block.Transaction, len(queue))
	copy(txs, queue)

	return txs, nil
}

// RemoveProcessed drops the given transactions from the shard's queue,
// typically after their block was committed
func (tp *transactionPool) RemoveProcessed(shardID uint32, txs []*block.Transaction) {
	if len(txs) == 0 {
		return
	}

	processed := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		processed[string(tx.Hash)] = struct{}{}
	}

	tp.mut.Lock()
	defer tp.mut.Unlock()

	remaining := make([]*block.Transaction, 0, len(tp.pending[shardID]))
	for _, tx := range tp.pending[shardID] {
		if _, found := processed[string(tx.Hash)]; found {
			delete(tp.seen, string(tx.Hash))
			continue
		}
		remaining = append(remaining, tx)
	}
	tp.pending[shardID] = remaining

	log.Trace("removed processed transactions",
		"shard", shardID,
		"num removed", len(txs),
		"num remaining", len(remaining))
}

// NumPending returns the number of queued transactions for the given shard
func (tp *transactionPool) NumPending(shardID uint32) int {
	tp.mut.RLock()
	defer tp.mut.RUnlock()

	return len(tp.pending[shardID])
}

// IsInterfaceNil returns true if there is no value under the interface
func (tp *transactionPool) IsInterfaceNil() bool {
	return tp == nil
}
