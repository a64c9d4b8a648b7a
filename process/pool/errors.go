package pool

import "errors"

// ErrInvalidCapacity signals that the pool was created with a zero capacity
var ErrInvalidCapacity = errors.New("invalid transaction pool capacity")

// ErrNilTransaction signals that a nil transaction was provided
var ErrNilTransaction = errors.New("nil transaction")

// ErrPoolFull signals that the shard's pending queue reached its capacity
var ErrPoolFull = errors.New("transaction pool is full")
