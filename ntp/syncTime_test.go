package ntp

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyshard/ps-chain-go/config"
)

func createTestNTPConfig() config.NTPConfig {
	return config.NTPConfig{
		Hosts:               []string{"host1", "host2", "host3"},
		Port:                123,
		TimeoutMilliseconds: 100,
		SyncPeriodSeconds:   3600,
		Version:             0,
	}
}

func TestNewNTPOptions(t *testing.T) {
	t.Parallel()

	options := NewNTPOptions(createTestNTPConfig())

	assert.Equal(t, []string{"host1", "host2", "host3"}, options.Hosts)
	assert.Equal(t, 123, options.Port)
	assert.Equal(t, 100*time.Millisecond, options.Timeout)
}

func TestSyncTime_SyncAveragesOffsets(t *testing.T) {
	t.Parallel()

	offsets := map[int]time.Duration{
		0: 10 * time.Millisecond,
		1: 20 * time.Millisecond,
		2: 60 * time.Millisecond,
	}

	st := NewSyncTime(createTestNTPConfig(), func(options NTPOptions, hostIndex int) (*ntp.Response, error) {
		return &ntp.Response{ClockOffset: offsets[hostIndex]}, nil
	})

	st.sync()

	assert.Equal(t, 30*time.Millisecond, st.ClockOffset())
}

func TestSyncTime_SyncSkipsFailingHosts(t *testing.T) {
	t.Parallel()

	st := NewSyncTime(createTestNTPConfig(), func(options NTPOptions, hostIndex int) (*ntp.Response, error) {
		if hostIndex != 1 {
			return nil, errors.New("host unreachable")
		}
		return &ntp.Response{ClockOffset: 42 * time.Millisecond}, nil
	})

	st.sync()

	assert.Equal(t, 42*time.Millisecond, st.ClockOffset())
}

func TestSyncTime_SyncKeepsOffsetWhenNoHostAnswers(t *testing.T) {
	t.Parallel()

	st := NewSyncTime(createTestNTPConfig(), func(options NTPOptions, hostIndex int) (*ntp.Response, error) {
		return nil, errors.New("host unreachable")
	})

	st.setClockOffset(17 * time.Millisecond)
	st.sync()

	assert.Equal(t, 17*time.Millisecond, st.ClockOffset())
}

func TestSyncTime_CurrentTimeAppliesOffset(t *testing.T) {
	t.Parallel()

	st := NewSyncTime(createTestNTPConfig(), nil)
	st.setClockOffset(time.Hour)

	diff := time.Until(st.CurrentTime())

	assert.InDelta(t, time.Hour.Seconds(), diff.Seconds(), 5)
}

func TestSyncTime_StartAndClose(t *testing.T) {
	t.Parallel()

	numCalls := make(chan struct{}, 16)
	st := NewSyncTime(createTestNTPConfig(), func(options NTPOptions, hostIndex int) (*ntp.Response, error) {
		numCalls <- struct{}{}
		return &ntp.Response{}, nil
	})

	st.StartSyncingTime()

	select {
	case <-numCalls:
	case <-time.After(time.Second):
		require.Fail(t, "sync was not triggered after start")
	}

	assert.Nil(t, st.Close())
}

func TestQueryNTP_IndexOutOfBounds(t *testing.T) {
	t.Parallel()

	response, err := queryNTP(NewNTPOptions(createTestNTPConfig()), 5)

	assert.Nil(t, response)
	assert.Equal(t, ErrIndexOutOfBounds, err)
}

func TestSyncTime_IsInterfaceNil(t *testing.T) {
	t.Parallel()

	var st *syncTime
	assert.True(t, st.IsInterfaceNil())

	st = NewSyncTime(createTestNTPConfig(), nil)
	assert.False(t, st.IsInterfaceNil())
}
