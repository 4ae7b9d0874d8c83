package testing

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Epoch is the fixed start time of clocks returned by NewFakeClock.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewFakeClock returns a clockwork fake clock starting at Epoch. Tickers
// created from it fire only when the test advances the clock.
func NewFakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Epoch)
}

// NewFakeClockAt returns a fake clock set to the given wall time in UTC on
// the Epoch date.
func NewFakeClockAt(hour, minute, second, nsec int) *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(Epoch.Year(), Epoch.Month(), Epoch.Day(), hour, minute, second, nsec, time.UTC))
}
