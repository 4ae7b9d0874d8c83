package raster

import (
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

func TestFontManagerDefaults(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	if names := m.Names(); len(names) != 1 || names[0] != DefaultFontName {
		t.Errorf("Names() = %v, want [%s]", names, DefaultFontName)
	}
	if !m.Covers('A') {
		t.Error("bundled font should cover ASCII")
	}
	// Cuneiform sign A; the bundled font has no such glyph.
	if m.Covers('\U00012000') {
		t.Error("bundled font unexpectedly covers cuneiform")
	}
}

func TestMissingRunes(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Missing("XII", "Roman Numerals"); len(got) != 0 {
		t.Errorf("Missing(ASCII) = %q, want none", string(got))
	}
	got := m.Missing("☉ ☽", "☉", "A")
	if string(got) != "☉☽" {
		t.Errorf("Missing = %q, want %q", string(got), "☉☽")
	}
}

func TestRegisterFontAppendsToChain(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.facesFor(12); err != nil {
		t.Fatalf("facesFor: %v", err)
	}
	if err := m.RegisterFont("Go Mono", gomono.TTF); err != nil {
		t.Fatalf("RegisterFont: %v", err)
	}
	faces, err := m.facesFor(12)
	if err != nil {
		t.Fatalf("facesFor: %v", err)
	}
	if len(faces) != 2 {
		t.Errorf("faces = %d, want 2 after registering a fallback", len(faces))
	}
}

func TestRegisterFontRejectsGarbage(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	if err := m.RegisterFont("junk", []byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
	if err := m.RegisterFont("", nil); err == nil {
		t.Error("expected error for empty name")
	}
	if err := m.RegisterFile("/nonexistent/font.ttf"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFacesForRejectsBadSize(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatal(err)
	}
	for _, px := range []float64{0, -3} {
		if _, err := m.facesFor(px); err == nil {
			t.Errorf("facesFor(%v) should fail", px)
		}
	}
}
