package testing

import (
	"bytes"
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

// Snapshot captures the display operations of one or more surfaces.
type Snapshot struct {
	Faces map[string][]DisplayOp `json:"faces"`
}

// CaptureSnapshot records the operations of each named surface.
func CaptureSnapshot(surfaces map[string]*RecordingSurface) *Snapshot {
	snap := &Snapshot{Faces: make(map[string][]DisplayOp, len(surfaces))}
	for name, s := range surfaces {
		snap.Faces[name] = s.Ops()
	}
	return snap
}

// Diff returns a human-readable diff between this snapshot and other.
// Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	return cmp.Diff(other, s)
}

// JSON encodes the snapshot with stable key order and indentation.
func (s *Snapshot) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
