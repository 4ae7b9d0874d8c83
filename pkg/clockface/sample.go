package clockface

import (
	"fmt"
	"time"
)

// TimeSample is one frame's reading of the wall clock. Every face drawn in
// a frame receives the same sample.
type TimeSample struct {
	Hour   int     // 0-23
	Minute int     // 0-59
	Second float64 // [0, 60), fractional when the source has sub-second resolution
}

// SampleOf reads t in its own location, keeping sub-second precision so the
// second hand sweeps.
func SampleOf(t time.Time) TimeSample {
	h, m, s := t.Clock()
	return TimeSample{
		Hour:   h,
		Minute: m,
		Second: float64(s) + float64(t.Nanosecond())/1e9,
	}
}

// WholeSecondSampleOf reads t truncated to the second. The second hand then
// ticks instead of sweeping.
func WholeSecondSampleOf(t time.Time) TimeSample {
	h, m, s := t.Clock()
	return TimeSample{Hour: h, Minute: m, Second: float64(s)}
}

// Sampler converts a clock reading into a TimeSample.
type Sampler func(time.Time) TimeSample

func (s TimeSample) String() string {
	return fmt.Sprintf("%02d:%02d:%06.3f", s.Hour, s.Minute, s.Second)
}
