// Package testing provides test doubles for exoclock.
//
// # Recording surfaces
//
// [RecordingSurface] implements graphics.Surface and serializes every call
// into a [DisplayOp], so renderer output can be compared structurally:
//
//	s := drifttest.NewRecordingSurface()
//	r := clockface.DefaultRenderer()
//	_ = r.Draw(s, labels.Alchemy, "Alchemical Symbols", sample)
//	lines := s.OpsNamed("drawLine") // 12 ticks + 3 hands
//
// Use FailAfter to make the surface report an error mid-frame.
//
// # Time
//
// [NewFakeClock] returns a clockwork fake clock fixed at [Epoch]; advance it
// to fire the driver's ticker deterministically.
package testing
