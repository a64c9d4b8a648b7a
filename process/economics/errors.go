package economics

import (
	"errors"
)

// ErrInvalidRewardsValue signals that an invalid rewards value was provided
var ErrInvalidRewardsValue = errors.New("invalid rewards value")

// ErrInvalidRewardsPercentage signals that an invalid rewards percentage was provided
var ErrInvalidRewardsPercentage = errors.New("invalid rewards percentage")

// ErrNilBlock signals that a nil block was provided
var ErrNilBlock = errors.New("nil block")
