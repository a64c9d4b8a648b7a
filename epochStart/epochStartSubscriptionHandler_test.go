package epochStart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochStartSubscriptionHandler_NotifyAll(t *testing.T) {
	t.Parallel()

	essh := NewEpochStartSubscriptionHandler()

	firstEpochs := make([]uint64, 0)
	secondEpochs := make([]uint64, 0)

	first := MakeHandlerForEpochStart(func(epoch uint64) {
		firstEpochs = append(firstEpochs, epoch)
	})
	second := MakeHandlerForEpochStart(func(epoch uint64) {
		secondEpochs = append(secondEpochs, epoch)
	})

	essh.RegisterHandler(first)
	essh.RegisterHandler(second)

	essh.NotifyAll(1)
	essh.NotifyAll(2)

	assert.Equal(t, []uint64{1, 2}, firstEpochs)
	assert.Equal(t, []uint64{1, 2}, secondEpochs)
}

func TestEpochStartSubscriptionHandler_UnregisterHandler(t *testing.T) {
	t.Parallel()

	essh := NewEpochStartSubscriptionHandler()

	numCalls := 0
	handler := MakeHandlerForEpochStart(func(epoch uint64) {
		numCalls++
	})

	essh.RegisterHandler(handler)
	essh.NotifyAll(1)
	essh.UnregisterHandler(handler)
	essh.NotifyAll(2)

	assert.Equal(t, 1, numCalls)
}

func TestEpochStartSubscriptionHandler_NilHandlerIsIgnored(t *testing.T) {
	t.Parallel()

	essh := NewEpochStartSubscriptionHandler()

	essh.RegisterHandler(nil)
	essh.UnregisterHandler(nil)

	// no subscribers, must not panic
	essh.NotifyAll(1)

	assert.False(t, essh.IsInterfaceNil())
}
