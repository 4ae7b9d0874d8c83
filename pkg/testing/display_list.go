package testing

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-drift/exoclock/pkg/graphics"
)

// DisplayOp represents a serialized surface drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// RecordingSurface implements graphics.Surface and records every call as a
// DisplayOp. It can be told to fail after a number of draw calls to
// exercise error propagation.
type RecordingSurface struct {
	mu          sync.Mutex
	ops         []DisplayOp
	extent      graphics.Extent
	equalAspect bool
	err         error

	failAfter int
	failErr   error
	draws     int
}

// NewRecordingSurface returns an empty recording surface.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{failAfter: -1}
}

// FailAfter makes the surface record err once n further draw calls
// (circles, lines, text) have succeeded.
func (c *RecordingSurface) FailAfter(n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failAfter = c.draws + n
	c.failErr = err
}

func (c *RecordingSurface) record(op DisplayOp, draw bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return
	}
	if draw {
		if c.failAfter >= 0 && c.draws >= c.failAfter {
			c.err = c.failErr
			return
		}
		c.draws++
	}
	c.ops = append(c.ops, op)
}

func (c *RecordingSurface) SetEqualAspect(equal bool) {
	c.mu.Lock()
	c.equalAspect = equal
	c.mu.Unlock()
	c.record(DisplayOp{Op: "setEqualAspect", Params: sortedMap("equal", equal)}, false)
}

func (c *RecordingSurface) SetExtent(e graphics.Extent) {
	c.mu.Lock()
	c.extent = e
	c.mu.Unlock()
	c.record(DisplayOp{Op: "setExtent", Params: serializeExtent(e)}, false)
}

func (c *RecordingSurface) Clear(color graphics.Color) {
	c.record(DisplayOp{Op: "clear", Params: sortedMap("color", serializeColor(color))}, false)
}

func (c *RecordingSurface) DrawCircle(center graphics.Offset, radius float64, paint graphics.Paint) {
	c.record(DisplayOp{
		Op: "drawCircle",
		Params: sortedMap(
			"cx", round2(center.X),
			"cy", round2(center.Y),
			"radius", round2(radius),
			"style", paint.Style.String(),
			"width", round2(paint.StrokeWidth),
			"color", serializeColor(paint.Color),
		),
	}, true)
}

func (c *RecordingSurface) DrawLine(p1, p2 graphics.Offset, paint graphics.Paint) {
	c.record(DisplayOp{
		Op: "drawLine",
		Params: sortedMap(
			"x1", round2(p1.X), "y1", round2(p1.Y),
			"x2", round2(p2.X), "y2", round2(p2.Y),
			"width", round2(paint.StrokeWidth),
			"color", serializeColor(paint.Color),
		),
	}, true)
}

func (c *RecordingSurface) DrawText(text string, pos graphics.Offset, style graphics.TextStyle) {
	c.record(DisplayOp{
		Op: "drawText",
		Params: sortedMap(
			"text", text,
			"x", round2(pos.X), "y", round2(pos.Y),
			"size", round2(style.FontSize),
			"halign", style.HAlign.String(),
			"valign", style.VAlign.String(),
		),
	}, true)
}

func (c *RecordingSurface) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Ops returns a copy of the recorded operations.
func (c *RecordingSurface) Ops() []DisplayOp {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := make([]DisplayOp, len(c.ops))
	copy(ops, c.ops)
	return ops
}

// OpsNamed returns the recorded operations with the given name.
func (c *RecordingSurface) OpsNamed(name string) []DisplayOp {
	var out []DisplayOp
	for _, op := range c.Ops() {
		if op.Op == name {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards recorded operations and any injected or recorded error.
func (c *RecordingSurface) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops = nil
	c.err = nil
	c.failAfter = -1
	c.failErr = nil
	c.draws = 0
}

// View returns the current extent and aspect setting.
func (c *RecordingSurface) View() (graphics.Extent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extent, c.equalAspect
}

// --- Serialization helpers ---

func serializeExtent(e graphics.Extent) map[string]any {
	return sortedMap(
		"xmin", round2(e.XMin),
		"xmax", round2(e.XMax),
		"ymin", round2(e.YMin),
		"ymax", round2(e.YMax),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
