package ntp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/beevik/ntp"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/polyshard/ps-chain-go/config"
	"github.com/polyshard/ps-chain-go/consensus"
)

var _ consensus.SyncTimer = (*syncTime)(nil)

var log = logger.GetOrCreate("ntp")

// NTPOptions holds the parameters of one NTP query round
type NTPOptions struct {
	Hosts   []string
	Port    int
	Version int
	Timeout time.Duration
}

// NewNTPOptions creates NTP options from the node configuration
func NewNTPOptions(ntpConfig config.NTPConfig) NTPOptions {
	timeout := time.Duration(ntpConfig.TimeoutMilliseconds) * time.Millisecond

	return NTPOptions{
		Hosts:   ntpConfig.Hosts,
		Port:    ntpConfig.Port,
		Version: ntpConfig.Version,
		Timeout: timeout,
	}
}

func queryNTP(options NTPOptions, hostIndex int) (*ntp.Response, error) {
	if hostIndex >= len(options.Hosts) {
		return nil, ErrIndexOutOfBounds
	}

	queryOptions := ntp.QueryOptions{
		Timeout: options.Timeout,
		Version: options.Version,
		Port:    options.Port,
	}

	return ntp.QueryWithOptions(options.Hosts[hostIndex], queryOptions)
}

// syncTime periodically queries the configured NTP hosts and keeps the
// average clock offset, so block timestamps do not depend on the drift of
// the local clock
type syncTime struct {
	mut         sync.RWMutex
	clockOffset time.Duration
	syncPeriod  time.Duration
	options     NTPOptions
	query       func(options NTPOptions, hostIndex int) (*ntp.Response, error)
	cancelFunc  context.CancelFunc
}

// NewSyncTime creates a syncTime object. The customQueryFunc is used in tests
// to replace the wire NTP query; production callers pass nil.
func NewSyncTime(
	ntpConfig config.NTPConfig,
	customQueryFunc func(options NTPOptions, hostIndex int) (*ntp.Response, error),
) *syncTime {
	queryFunc := customQueryFunc
	if queryFunc == nil {
		queryFunc = queryNTP
	}

	return &syncTime{
		syncPeriod: time.Duration(ntpConfig.SyncPeriodSeconds) * time.Second,
		options:    NewNTPOptions(ntpConfig),
		query:      queryFunc,
	}
}

// StartSyncingTime launches the background synchronization loop
func (s *syncTime) StartSyncingTime() {
	ctx, cancelFunc := context.WithCancel(context.Background())

	s.mut.Lock()
	s.cancelFunc = cancelFunc
	s.mut.Unlock()

	go s.startSync(ctx)
}

func (s *syncTime) startSync(ctx context.Context) {
	for {
		s.sync()

		select {
		case <-ctx.Done():
			log.Debug("syncTime's go routine is stopping...")
			return
		case <-time.After(s.syncPeriod):
		}
	}
}

// sync queries every configured host once and stores the average clock offset.
// Hosts that fail to answer are skipped; if no host answers, the previous
// offset is kept.
func (s *syncTime) sync() {
	clockOffsetSum := time.Duration(0)
	numSuccessfulQueries := 0

	for hostIndex := range s.options.Hosts {
		response, err := s.query(s.options, hostIndex)
		if err != nil {
			log.Debug("ntp query failed",
				"host", s.options.Hosts[hostIndex],
				"error", err.Error())
			continue
		}

		clockOffsetSum += response.ClockOffset
		numSuccessfulQueries++
	}

	if numSuccessfulQueries == 0 {
		log.Warn("no ntp host answered, keeping previous clock offset",
			"clock offset", s.ClockOffset())
		return
	}

	clockOffset := clockOffsetSum / time.Duration(numSuccessfulQueries)
	s.setClockOffset(clockOffset)

	log.Debug("time synchronized",
		"num hosts answered", numSuccessfulQueries,
		"clock offset", clockOffset)
}

func (s *syncTime) setClockOffset(clockOffset time.Duration) {
	s.mut.Lock()
	s.clockOffset = clockOffset
	s.mut.Unlock()
}

// ClockOffset returns the last computed offset between the local clock and
// the NTP reference
func (s *syncTime) ClockOffset() time.Duration {
	s.mut.RLock()
	defer s.mut.RUnlock()

	return s.clockOffset
}

// CurrentTime returns the local time adjusted by the NTP clock offset
func (s *syncTime) CurrentTime() time.Time {
	return time.Now().Add(s.ClockOffset())
}

// FormattedCurrentTime returns the adjusted time in a log friendly format
func (s *syncTime) FormattedCurrentTime() string {
	currentTime := s.CurrentTime()

	return fmt.Sprintf("%.4d-%.2d-%.2d %.2d:%.2d:%.2d.%.9d",
		currentTime.Year(), currentTime.Month(), currentTime.Day(),
		currentTime.Hour(), currentTime.Minute(), currentTime.Second(), currentTime.Nanosecond())
}

// Close stops the background synchronization loop
func (s *syncTime) Close() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (s *syncTime) IsInterfaceNil() bool {
	return s == nil
}
