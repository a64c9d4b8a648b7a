package dpos

import (
	"errors"
)

// ErrNilValidatorPool signals that a nil validator pool was provided
var ErrNilValidatorPool = errors.New("nil validator pool")

// ErrEmptyValidatorPool signals that the provided validator pool holds no validator
var ErrEmptyValidatorPool = errors.New("empty validator pool")

// ErrInvalidShardCount signals that the configured number of shards is invalid
var ErrInvalidShardCount = errors.New("the number of shards must be greater than zero")

// ErrNilSelfAddress signals that a nil self address was provided
var ErrNilSelfAddress = errors.New("nil self address")

// ErrNilPrivateKey signals that a nil private key was provided
var ErrNilPrivateKey = errors.New("nil private key")

// ErrNilKeyGenerator signals that a nil key generator was provided
var ErrNilKeyGenerator = errors.New("nil key generator")

// ErrNilSingleSigner signals that a nil single signer was provided
var ErrNilSingleSigner = errors.New("nil single signer")

// ErrNilMarshalizer signals that a nil marshalizer was provided
var ErrNilMarshalizer = errors.New("nil marshalizer")

// ErrNilHasher signals that a nil hasher was provided
var ErrNilHasher = errors.New("nil hasher")

// ErrNilTransactionPool signals that a nil transaction pool handler was provided
var ErrNilTransactionPool = errors.New("nil transaction pool handler")

// ErrNilExecutionProofProvider signals that a nil execution proof provider was provided
var ErrNilExecutionProofProvider = errors.New("nil execution proof provider")

// ErrNilRewardsHandler signals that a nil rewards handler was provided
var ErrNilRewardsHandler = errors.New("nil rewards handler")

// ErrNilBootStorer signals that a nil boot storer was provided
var ErrNilBootStorer = errors.New("nil boot storer")

// ErrNilEpochStartNotifier signals that a nil epoch start notifier was provided
var ErrNilEpochStartNotifier = errors.New("nil epoch start notifier")

// ErrNilSyncTimer signals that a nil sync timer was provided
var ErrNilSyncTimer = errors.New("nil sync timer")

// ErrNilBlock signals that a nil block was provided
var ErrNilBlock = errors.New("nil block")

// ErrNotScheduledProducer signals that the local validator is not the elected
// producer for the requested height and shard
var ErrNotScheduledProducer = errors.New("local validator is not the scheduled producer")

// ErrInvalidShardID signals that a shard id is not covered by the current configuration
var ErrInvalidShardID = errors.New("shard id is not covered by the current configuration")

// ErrWrongBlockHeight signals that a block's height differs from the current consensus height
var ErrWrongBlockHeight = errors.New("block height does not match the current consensus height")

// ErrUnauthorizedProducer signals that a block was produced by a validator
// other than the elected one
var ErrUnauthorizedProducer = errors.New("block producer is not the elected validator")

// ErrInvalidPreviousHash signals broken chain linkage: the block does not
// extend the locally known predecessor
var ErrInvalidPreviousHash = errors.New("block previous hash does not match the local chain head")

// ErrInvalidSignature signals that a block signature failed cryptographic verification
var ErrInvalidSignature = errors.New("invalid block signature")

// ErrNoSavedState signals that no consensus registry was found in the boot storer
var ErrNoSavedState = errors.New("no saved consensus state")
