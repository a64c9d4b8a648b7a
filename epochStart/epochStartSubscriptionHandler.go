package epochStart

import (
	"sync"

	"github.com/polyshard/ps-chain-go/consensus"
)

var _ consensus.EpochStartNotifier = (*epochStartSubscriptionHandler)(nil)

// epochStartSubscriptionHandler will handle subscription of components and
// notify them when the consensus engine crosses an epoch boundary
type epochStartSubscriptionHandler struct {
	epochStartHandlers   []consensus.EpochStartActionHandler
	mutEpochStartHandler sync.RWMutex
}

// NewEpochStartSubscriptionHandler returns a new instance of epochStartSubscriptionHandler
func NewEpochStartSubscriptionHandler() *epochStartSubscriptionHandler {
	return &epochStartSubscriptionHandler{
		epochStartHandlers: make([]consensus.EpochStartActionHandler, 0),
	}
}

// RegisterHandler will subscribe a component so it will be called when NotifyAll is called
func (essh *epochStartSubscriptionHandler) RegisterHandler(handler consensus.EpochStartActionHandler) {
	if handler == nil {
		return
	}

	essh.mutEpochStartHandler.Lock()
	essh.epochStartHandlers = append(essh.epochStartHandlers, handler)
	essh.mutEpochStartHandler.Unlock()
}

// UnregisterHandler will unsubscribe a component
func (essh *epochStartSubscriptionHandler) UnregisterHandler(handlerToUnregister consensus.EpochStartActionHandler) {
	if handlerToUnregister == nil {
		return
	}

	essh.mutEpochStartHandler.Lock()
	for idx, handler := range essh.epochStartHandlers {
		if handler == handlerToUnregister {
			essh.epochStartHandlers = append(essh.epochStartHandlers[:idx], essh.epochStartHandlers[idx+1:]...)
			break
		}
	}
	essh.mutEpochStartHandler.Unlock()
}

// NotifyAll will call all the subscribed components for the given epoch
func (essh *epochStartSubscriptionHandler) NotifyAll(epoch uint64) {
	essh.mutEpochStartHandler.RLock()
	handlers := make([]consensus.EpochStartActionHandler, len(essh.epochStartHandlers))
	copy(handlers, essh.epochStartHandlers)
	essh.mutEpochStartHandler.RUnlock()

	for _, handler := range handlers {
		handler.EpochStartAction(epoch)
	}
}

// IsInterfaceNil returns true if there is no value under the interface
func (essh *epochStartSubscriptionHandler) IsInterfaceNil() bool {
	return essh == nil
}

// MakeHandlerForEpochStart will return a struct which will satisfy the
// EpochStartActionHandler interface from a plain function
func MakeHandlerForEpochStart(f func(epoch uint64)) consensus.EpochStartActionHandler {
	return &handlerStruct{f: f}
}

type handlerStruct struct {
	f func(epoch uint64)
}

// EpochStartAction will call the wrapped function if not nil
func (hs *handlerStruct) EpochStartAction(epoch uint64) {
	if hs.f != nil {
		hs.f(epoch)
	}
}
