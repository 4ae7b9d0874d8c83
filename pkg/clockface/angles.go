package clockface

// Angles are in degrees, 0 pointing east (3 o'clock) and growing
// counter-clockwise, so 90 is 12 o'clock and positions advance clockwise
// as the angle decreases.

const (
	degreesPerHour   = 360.0 / 12
	degreesPerMinute = 360.0 / 60
	topAngle         = 90.0
)

// HourMarkAngle returns the angle of hour position h (0 = 12 o'clock).
func HourMarkAngle(h int) float64 {
	return topAngle - float64(h)*degreesPerHour
}

// HandAngles holds the three hand directions for one TimeSample.
type HandAngles struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandAnglesOf computes hand directions. The hour hand creeps with the
// minute; the minute hand moves in whole minutes; the second hand follows
// the sample's fractional second.
func HandAnglesOf(t TimeSample) HandAngles {
	hour12 := t.Hour % 12
	return HandAngles{
		Hour:   topAngle - (float64(hour12)+float64(t.Minute)/60)*degreesPerHour,
		Minute: topAngle - float64(t.Minute)*degreesPerMinute,
		Second: topAngle - t.Second*degreesPerMinute,
	}
}
