package block

import (
	"errors"
)

// ErrNilBlockHeader signals that the block carries a nil header
var ErrNilBlockHeader = errors.New("nil block header")

// ErrNilShardData signals that a shard section of the block is nil
var ErrNilShardData = errors.New("nil shard data section")

// ErrNoCoveredShards signals that the block header covers no shard
var ErrNoCoveredShards = errors.New("block covers no shard")

// ErrShardDataMismatch signals that the shard sections do not match the header's covered shards
var ErrShardDataMismatch = errors.New("shard data sections do not match covered shards")
