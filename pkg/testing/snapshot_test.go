package testing

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-drift/exoclock/pkg/graphics"
)

func drawSample(s *RecordingSurface, label string) {
	s.SetEqualAspect(true)
	s.SetExtent(graphics.SquareExtent(1.15))
	s.DrawCircle(graphics.Offset{}, 1, graphics.Stroke(graphics.ColorBlack, 1.6))
	s.DrawLine(graphics.Offset{}, graphics.Polar(0.5, 90), graphics.Stroke(graphics.RGB(0xFF, 0, 0), 3))
	s.DrawText(label, graphics.Offset{X: 0, Y: 0.82}, graphics.TextStyle{
		FontSize: 10,
		HAlign:   graphics.AlignCenter,
		VAlign:   graphics.AlignMiddle,
	})
}

func TestRecordingSurface_Ops(t *testing.T) {
	s := NewRecordingSurface()
	drawSample(s, "XII")

	ops := s.Ops()
	if len(ops) != 5 {
		t.Fatalf("expected 5 ops, got %d", len(ops))
	}
	want := []string{"setEqualAspect", "setExtent", "drawCircle", "drawLine", "drawText"}
	for i, op := range ops {
		if op.Op != want[i] {
			t.Errorf("op %d = %q, want %q", i, op.Op, want[i])
		}
	}

	line := s.OpsNamed("drawLine")[0]
	if line.Params["x2"] != 0.0 || line.Params["y2"] != 0.5 {
		t.Errorf("line end = (%v, %v), want (0, 0.5)", line.Params["x2"], line.Params["y2"])
	}
	if line.Params["color"] != "0xFFFF0000" {
		t.Errorf("line color = %v", line.Params["color"])
	}

	e, equal := s.View()
	if !equal || e != graphics.SquareExtent(1.15) {
		t.Errorf("View() = %+v, %v", e, equal)
	}
}

func TestRecordingSurface_FailAfter(t *testing.T) {
	boom := errors.New("boom")
	s := NewRecordingSurface()
	s.FailAfter(1, boom)
	drawSample(s, "XII")

	if !errors.Is(s.Err(), boom) {
		t.Fatalf("expected boom, got %v", s.Err())
	}
	if got := len(s.OpsNamed("drawCircle")); got != 1 {
		t.Errorf("expected the first draw to be recorded, got %d circles", got)
	}
	if got := len(s.OpsNamed("drawText")); got != 0 {
		t.Errorf("expected no draws after the failure, got %d", got)
	}

	s.Reset()
	if s.Err() != nil || len(s.Ops()) != 0 {
		t.Fatalf("Reset left err=%v ops=%d", s.Err(), len(s.Ops()))
	}
	drawSample(s, "XII")
	if s.Err() != nil {
		t.Errorf("Reset did not clear FailAfter: %v", s.Err())
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	a, b := NewRecordingSurface(), NewRecordingSurface()
	drawSample(a, "XII")
	drawSample(b, "XII")

	sa := CaptureSnapshot(map[string]*RecordingSurface{"face": a})
	sb := CaptureSnapshot(map[string]*RecordingSurface{"face": b})
	if diff := sa.Diff(sb); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Changed(t *testing.T) {
	a, b := NewRecordingSurface(), NewRecordingSurface()
	drawSample(a, "XII")
	drawSample(b, "☉")

	sa := CaptureSnapshot(map[string]*RecordingSurface{"face": a})
	sb := CaptureSnapshot(map[string]*RecordingSurface{"face": b})
	diff := sa.Diff(sb)
	if diff == "" {
		t.Fatal("expected a diff for different labels")
	}
	if !strings.Contains(diff, "XII") {
		t.Errorf("diff does not mention the changed label:\n%s", diff)
	}
}

func TestSnapshot_JSON(t *testing.T) {
	s := NewRecordingSurface()
	drawSample(s, "☉")
	data, err := CaptureSnapshot(map[string]*RecordingSurface{"Alchemy": s}).JSON()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "☉") {
		t.Error("expected unescaped label text in JSON")
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got := len(decoded.Faces["Alchemy"]); got != 5 {
		t.Errorf("expected 5 ops after decoding, got %d", got)
	}
}
