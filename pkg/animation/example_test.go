package animation_test

import (
	"context"
	"fmt"

	"github.com/go-drift/exoclock/pkg/animation"
	"github.com/go-drift/exoclock/pkg/labels"
	drifttest "github.com/go-drift/exoclock/pkg/testing"
)

// This example draws a single frame and stops. A real panel keeps the
// driver running until the process is interrupted.
func ExampleDriver() {
	spec, _ := labels.Lookup("alchemy")
	surface := drifttest.NewRecordingSurface()
	clk := drifttest.NewFakeClockAt(10, 8, 30, 0)

	ctx, cancel := context.WithCancel(context.Background())
	d, err := animation.NewDriver(clk,
		[]animation.Target{{Spec: spec, Surface: surface}},
		animation.WithPresenter(func(_ context.Context, f animation.Frame) error {
			fmt.Printf("frame %d shows %s\n", f.Seq, f.Sample)
			cancel()
			return nil
		}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	err = d.Run(ctx)
	fmt.Println(err, d.State())
	fmt.Println(len(surface.OpsNamed("drawText")), "labels and title drawn")
	// Output:
	// frame 1 shows 10:08:30.000
	// context canceled stopped
	// 13 labels and title drawn
}
