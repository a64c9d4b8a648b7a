package block

import (
	"github.com/multiversx/mx-chain-core-go/hashing"
	"github.com/multiversx/mx-chain-core-go/marshal"
)

// Transaction holds one pending transaction as handed over by the transaction pool.
// The consensus engine treats the payload as opaque; execution semantics live in
// the execution engine.
type Transaction struct {
	Hash    []byte
	Payload []byte
}

// Header holds the fields shared by all shard sections of a block
type Header struct {
	Nonce     uint64
	TimeStamp uint64
	PrevHash  []byte
	Producer  []byte
	ShardIDs  []uint32
}

// ShardData holds the per-shard section of a block: the ordered transaction
// batch, the opaque execution proof and the producer's signature
type ShardData struct {
	ShardID        uint32
	Transactions   []*Transaction
	ExecutionProof []byte
	Signature      []byte
}

// Block is the unit of chain growth: one header plus one shard section per
// covered shard. A block is assembled once at production time and never
// mutated afterwards.
type Block struct {
	Header    *Header
	ShardData []*ShardData
}

// TxCount returns the number of transactions summed across all shard sections
func (b *Block) TxCount() uint64 {
	count := uint64(0)
	for _, sd := range b.ShardData {
		count += uint64(len(sd.Transactions))
	}

	return count
}

// CheckIntegrity verifies the block carries exactly one shard section per
// covered shard, in header order
func (b *Block) CheckIntegrity() error {
	if b.Header == nil {
		return ErrNilBlockHeader
	}
	if len(b.Header.ShardIDs) == 0 {
		return ErrNoCoveredShards
	}
	if len(b.ShardData) != len(b.Header.ShardIDs) {
		return ErrShardDataMismatch
	}

	for i, shardID := range b.Header.ShardIDs {
		if b.ShardData[i] == nil {
			return ErrNilShardData
		}
		if b.ShardData[i].ShardID != shardID {
			return ErrShardDataMismatch
		}
	}

	return nil
}

// SignablePayload returns the deterministic byte representation used for
// producer signatures: the whole block with every signature field blanked
func (b *Block) SignablePayload(marshalizer marshal.Marshalizer) ([]byte, error) {
	strippedShardData := make([]*ShardData, 0, len(b.ShardData))
	for _, sd := range b.ShardData {
		strippedShardData = append(strippedShardData, &ShardData{
			ShardID:        sd.ShardID,
			Transactions:   sd.Transactions,
			ExecutionProof: sd.ExecutionProof,
			Signature:      nil,
		})
	}

	stripped := &Block{
		Header:    b.Header,
		ShardData: strippedShardData,
	}

	return marshalizer.Marshal(stripped)
}

// ComputeHash returns the block hash used for chain linkage
func (b *Block) ComputeHash(marshalizer marshal.Marshalizer, hasher hashing.Hasher) ([]byte, error) {
	buff, err := marshalizer.Marshal(b)
	if err != nil {
		return nil, err
	}

	return hasher.Compute(string(buff)), nil
}
