package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// RGBA implements image/color.Color with alpha-premultiplied 16-bit channels,
// so a Color can be handed directly to image.NewUniform.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(uint8(c >> 24))
	r = uint32(uint8(c>>16)) * a / 0xFF
	g = uint32(uint8(c>>8)) * a / 0xFF
	b = uint32(uint8(c)) * a / 0xFF
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// Hex returns the color as #RRGGBB, or #RRGGBBAA when not fully opaque.
func (c Color) Hex() string {
	if uint8(c>>24) == 0xFF {
		return fmt.Sprintf("#%06X", uint32(c)&0x00FFFFFF)
	}
	return fmt.Sprintf("#%06X%02X", uint32(c)&0x00FFFFFF, uint8(c>>24))
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA (the leading # is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	switch len(h) {
	case 6:
		h += "FF"
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Common colors.
const (
	ColorBlack = Color(0xFF000000)
	ColorWhite = Color(0xFFFFFFFF)
)

// CategoryPalette is the ten-color categorical cycle used for ticks and
// hands when a style asks for cycled colors.
var CategoryPalette = []Color{
	RGB(0x1F, 0x77, 0xB4), RGB(0xFF, 0x7F, 0x0E), RGB(0x2C, 0xA0, 0x2C), RGB(0xD6, 0x27, 0x28),
	RGB(0x94, 0x67, 0xBD), RGB(0x8C, 0x56, 0x4B), RGB(0xE3, 0x77, 0xC2), RGB(0x7F, 0x7F, 0x7F),
	RGB(0xBC, 0xBD, 0x22), RGB(0x17, 0xBE, 0xCF),
}
