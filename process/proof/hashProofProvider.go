package proof

import (
	"encoding/binary"
	"errors"

	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/multiversx/mx-chain-core-go/hashing"

	"github.com/polyshard/ps-chain-go/consensus"
	"github.com/polyshard/ps-chain-go/data/block"
)

var _ consensus.ExecutionProofProvider = (*hashProofProvider)(nil)

// ErrNilHasher signals that a nil hasher was provided
var ErrNilHasher = errors.New("nil hasher")

// hashProofProvider derives the execution proof of a shard batch as the hash
// of the shard id and the ordered transaction hashes. Verifiers recompute it
// from the same inputs, so any reordering or substitution changes the proof.
type hashProofProvider struct {
	hasher hashing.Hasher
}

// NewHashProofProvider creates a hash based execution proof provider
func NewHashProofProvider(hasher hashing.Hasher) (*hashProofProvider, error) {
	if check.IfNil(hasher) {
		return nil, ErrNilHasher
	}

	return &hashProofProvider{
		hasher: hasher,
	}, nil
}

// ComputeProof returns the proof for the given shard's transaction batch
func (hpp *hashProofProvider) ComputeProof(shardID uint32, txs []*block.Transaction) ([]byte, error) {
	buff := make([]byte, 4, 4+len(txs)*32)
	binary.BigEndian.PutUint32(buff, shardID)

	for _, tx := range txs {
		if tx == nil {
			continue
		}
		buff = append(buff, tx.Hash...)
	}

	return hpp.hasher.Compute(string(buff)), nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (hpp *hashProofProvider) IsInterfaceNil() bool {
	return hpp == nil
}
