package testscommon

import "time"

// SyncTimerStub -
type SyncTimerStub struct {
	CurrentTimeCalled func() time.Time
	ClockOffsetCalled func() time.Duration
}

// CurrentTime -
func (stub *SyncTimerStub) CurrentTime() time.Time {
	if stub.CurrentTimeCalled != nil {
		return stub.CurrentTimeCalled()
	}
	return time.Unix(0, 0)
}

// ClockOffset -
func (stub *SyncTimerStub) ClockOffset() time.Duration {
	if stub.ClockOffsetCalled != nil {
		return stub.ClockOffsetCalled()
	}
	return 0
}

// IsInterfaceNil -
func (stub *SyncTimerStub) IsInterfaceNil() bool {
	return stub == nil
}
