package validators

import (
	"errors"
)

// ErrNilAddress signals that a nil address was provided
var ErrNilAddress = errors.New("nil address")

// ErrNilPubKey signals that a nil public key was provided
var ErrNilPubKey = errors.New("nil public key")

// ErrNilStake signals that a nil stake value was provided
var ErrNilStake = errors.New("nil stake value")

// ErrNegativeStake signals that a negative stake value was provided
var ErrNegativeStake = errors.New("negative stake value")

// ErrNilValidator signals that a nil validator was provided
var ErrNilValidator = errors.New("nil validator")

// ErrValidatorNotFound signals that the validator has not been found in the pool
var ErrValidatorNotFound = errors.New("validator not found")

// ErrInvalidNumberOfShards signals that an invalid number of shards was provided
var ErrInvalidNumberOfShards = errors.New("the number of shards must be greater than zero")

// ErrEmptyValidatorPool signals that an operation was attempted on an empty validator pool
var ErrEmptyValidatorPool = errors.New("empty validator pool")

// ErrNoValidatorInShard signals that no validator is assigned to the queried shard
var ErrNoValidatorInShard = errors.New("no validator assigned to shard")
