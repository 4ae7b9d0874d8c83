package animation

import "github.com/jonboulle/clockwork"

// Clock provides wall time and tickers to the driver. Production code uses
// SystemClock; tests inject a clockwork fake clock to fire ticks
// deterministically.
type Clock = clockwork.Clock

// SystemClock returns the real wall clock.
func SystemClock() Clock { return clockwork.NewRealClock() }
