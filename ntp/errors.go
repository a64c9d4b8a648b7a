package ntp

import (
	"errors"
)

// ErrIndexOutOfBounds signals that a queried host index exceeds the configured hosts list
var ErrIndexOutOfBounds = errors.New("ntp host index out of bounds")
