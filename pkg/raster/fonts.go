package raster

import (
	stderrors "errors"
	"fmt"
	"math"
	"os"
	"sync"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/go-drift/exoclock/pkg/errors"
)

// DefaultFontName is the family registered by NewFontManager.
const DefaultFontName = "Go Regular"

// registeredFont is one parsed font in the fallback chain.
type registeredFont struct {
	name string
	font *sfnt.Font
}

// sizedFace is a font face at one pixel size.
type sizedFace struct {
	font *sfnt.Font
	face font.Face
}

// FontManager keeps an ordered fallback chain of fonts. Each rune is drawn
// with the first font that has a glyph for it. Canvas draws runes no font
// covers as a hollow box; Missing reports them ahead of time.
type FontManager struct {
	mu    sync.RWMutex
	fonts []registeredFont
	faces map[int64][]sizedFace
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go font first in
// the chain.
func NewFontManager() (*FontManager, error) {
	m := &FontManager{faces: make(map[int64][]sizedFace)}
	if err := m.RegisterFont(DefaultFontName, goregular.TTF); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultFontManager returns a shared font manager with the bundled font.
func DefaultFontManager() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			ce := &errors.ClockError{
				Op:   "raster.DefaultFontManager",
				Kind: errors.KindInit,
				Err:  err,
			}
			errors.Report(ce)
			defaultFontManagerErr = ce
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// RegisterFont appends a TrueType or OpenType font to the fallback chain.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts = append(m.fonts, registeredFont{name: name, font: f})
	// Cached faces no longer reflect the chain.
	m.faces = make(map[int64][]sizedFace)
	return nil
}

// RegisterFile reads and registers a font file, naming it by path.
func (m *FontManager) RegisterFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font: %w", err)
	}
	return m.RegisterFont(path, data)
}

// Names returns the fallback chain in order.
func (m *FontManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, len(m.fonts))
	for i, f := range m.fonts {
		names[i] = f.name
	}
	return names
}

// Covers reports whether any registered font has a glyph for r.
func (m *FontManager) Covers(r rune) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var buf sfnt.Buffer
	return m.coversLocked(&buf, r)
}

// Missing returns the distinct runes of texts that no registered font
// covers, in first-seen order. Whitespace is ignored.
func (m *FontManager) Missing(texts ...string) []rune {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var (
		buf     sfnt.Buffer
		missing []rune
		seen    = make(map[rune]bool)
	)
	for _, text := range texts {
		for _, r := range text {
			if seen[r] || unicode.IsSpace(r) {
				continue
			}
			seen[r] = true
			if !m.coversLocked(&buf, r) {
				missing = append(missing, r)
			}
		}
	}
	return missing
}

func (m *FontManager) coversLocked(buf *sfnt.Buffer, r rune) bool {
	for _, f := range m.fonts {
		if hasGlyph(f.font, buf, r) {
			return true
		}
	}
	return false
}

// facesFor returns the chain's faces at a pixel size, creating and caching
// them on first use. Sizes are cached at 1/64 pixel granularity.
func (m *FontManager) facesFor(px float64) ([]sizedFace, error) {
	if px <= 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return nil, fmt.Errorf("invalid font size %v", px)
	}
	key := int64(math.Round(px * 64))

	m.mu.RLock()
	faces, ok := m.faces[key]
	m.mu.RUnlock()
	if ok {
		return faces, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if faces, ok := m.faces[key]; ok {
		return faces, nil
	}
	if len(m.fonts) == 0 {
		return nil, stderrors.New("no fonts registered")
	}
	faces = make([]sizedFace, 0, len(m.fonts))
	for _, f := range m.fonts {
		face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    float64(key) / 64,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("face %q: %w", f.name, err)
		}
		faces = append(faces, sizedFace{font: f.font, face: face})
	}
	m.faces[key] = faces
	return faces, nil
}

// pick returns the first face with a glyph for r. It reports false when
// no face has one.
func pick(faces []sizedFace, buf *sfnt.Buffer, r rune) (font.Face, bool) {
	for _, f := range faces {
		if hasGlyph(f.font, buf, r) {
			return f.face, true
		}
	}
	return nil, false
}

func hasGlyph(f *sfnt.Font, buf *sfnt.Buffer, r rune) bool {
	idx, err := f.GlyphIndex(buf, r)
	return err == nil && idx != 0
}
