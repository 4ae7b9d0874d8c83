package labels

import (
	"sort"
	"strconv"
	"strings"

	"github.com/go-drift/exoclock/pkg/errors"
)

// DefaultPanelTitle is the heading drawn above the built-in panel.
const DefaultPanelTitle = "10 Exotic Real-Time Working Clocks"

// Built-in label sets, written 1 o'clock first and converted at init.
var (
	Cuneiform = MustFromOneFirst("☉Iron", "☽so1d", "♂dt", "♀Contra", "☿Mantra", "♃Neun", "♄Mcl", "♅4", "♆rb21", "♇zzk", "⚳zz", "⚴z")
	Runes     = MustFromOneFirst(":):)", ":)1@#%", ":z", ":w", "co:(", "coo:(", "ceo:(", "ion:):(", "play:)", "r0ck:8", "+12", "+123")
	Alchemy   = MustFromOneFirst("☉", "☽", "♂", "♀", "☿", "♃", "♄", "♅", "♆", "♇", "⚳", "⚴")
	Starborn  = MustFromOneFirst("<N", "<I", "<C", "<K", "<O", ">O", "^A", "B^^2", "^%^C", "42317j%%", "010254opap", "kali0,89")
	MathOps   = MustFromOneFirst("∅", "∇", "∆", "∂", "∞", "≈", "⊕", "⊗", "≡", "≥", "≤", "±")
	Zodiac    = MustFromOneFirst("Ϸ", "ϸ", "ע", "ד", "Ϫ", "Ϭ", "Ϯ", "ϰ", "Ͼ", "Ҩ", "Ҵ", "Ҷ")
	Techno    = MustFromOneFirst("a∅", "aa∇", "c∆", "cba∂", "4∞", "9≈", "a3ca⊕", "co⊗", "10≡", "001≥", "4abc≤", "0±")
	Geometry  = MustFromOneFirst("Ϟ", "ϟ", "Ϡ", "ϡ", "҉", "҈", "҂", "N9ck҃", "҄N0ck", "҅N3ck", "҆Zer", "҇Ekh")
	Spectral  = MustFromOneFirst("Ϟ", "ϟ", "Ϡ", "ϡ", "҉", "҈", "҂", "҃", "҄", "҅", "҆", "҇")

	// DevanagariDigits maps decimal digits (by index) to the glyphs used by
	// the Devanagari Exotic set. Only the first ten entries are reachable.
	DevanagariDigits = []string{"1☉", "1☽", "12♂", "5♀", "7☿", "3♃", "4♄", "3♅", "t♆", "o♇", "o⚳", "l⚴"}

	Devanagari = MustDigitSet(DevanagariDigits)
)

// DigitSet composes a 12-first label set by spelling each hour number
// (12, 1, 2, ... 11) with the given per-digit glyphs. At least ten digits
// are required; extra entries are ignored.
func DigitSet(digits []string) (LabelSet, error) {
	var ls LabelSet
	if len(digits) < 10 {
		return ls, errors.Config("labels.DigitSet", "digit table needs 10 entries, got %d", len(digits))
	}
	for i := range ls {
		hour := i
		if hour == 0 {
			hour = Positions
		}
		var sb strings.Builder
		for _, ch := range strconv.Itoa(hour) {
			sb.WriteString(digits[ch-'0'])
		}
		ls[i] = sb.String()
	}
	return ls, nil
}

// MustDigitSet is like DigitSet but panics on error.
func MustDigitSet(digits []string) LabelSet {
	ls, err := DigitSet(digits)
	if err != nil {
		panic(err)
	}
	return ls
}

// catalog lists the built-in faces in panel order.
var catalog = []struct {
	name string
	spec ClockSpec
}{
	{"cuneiform", ClockSpec{Title: "Neo-Cuneiform", Labels: Cuneiform}},
	{"runes", ClockSpec{Title: "Runic Numerals", Labels: Runes}},
	{"alchemy", ClockSpec{Title: "Alchemical Symbols", Labels: Alchemy}},
	{"starborn", ClockSpec{Title: "Starborn Script", Labels: Starborn}},
	{"devanagari", ClockSpec{Title: "Devanagari Exotic", Labels: Devanagari}},
	{"math", ClockSpec{Title: "Math Operators", Labels: MathOps}},
	{"zodiac", ClockSpec{Title: "Zodiac Set", Labels: Zodiac}},
	{"techno", ClockSpec{Title: "Techno-Alien", Labels: Techno}},
	{"geometry", ClockSpec{Title: "Geometry Script", Labels: Geometry}},
	{"spectral", ClockSpec{Title: "Spectral Script", Labels: Spectral}},
}

// Builtin returns the ten built-in clock specs in panel order.
func Builtin() []ClockSpec {
	specs := make([]ClockSpec, len(catalog))
	for i, c := range catalog {
		specs[i] = c.spec
	}
	return specs
}

// Lookup returns a built-in spec by its catalog name (case-insensitive).
func Lookup(name string) (ClockSpec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range catalog {
		if c.name == key {
			return c.spec, nil
		}
	}
	return ClockSpec{}, errors.Config("labels.Lookup", "unknown catalog set %q (have %s)", name, strings.Join(Names(), ", "))
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.name
	}
	sort.Strings(names)
	return names
}
