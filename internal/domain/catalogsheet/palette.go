// Package catalogsheet holds the rules shared by every catalog renderer:
// variant colour classification, badge text flow, progress accounting and
// document naming.
package catalogsheet

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PaletteKey names a colour family used for variant badges
type PaletteKey string

const (
	PaletteRed         PaletteKey = "red"
	PaletteYellow      PaletteKey = "yellow"
	PaletteGreen       PaletteKey = "green"
	PalettePurple      PaletteKey = "purple"
	PaletteCyan        PaletteKey = "cyan"
	PaletteGreenLight  PaletteKey = "greenLight"
	PaletteOrange      PaletteKey = "orange"
	PaletteOrangeLight PaletteKey = "orangeLight"
	PaletteBlue        PaletteKey = "blue"
	PaletteLime        PaletteKey = "lime"
	PaletteEmerald     PaletteKey = "emerald"
	PaletteAmber       PaletteKey = "amber"
	PalettePink        PaletteKey = "pink"
	PaletteFuchsia     PaletteKey = "fuchsia"
	PaletteSlate       PaletteKey = "slate"
	PaletteRose        PaletteKey = "rose"
	PaletteSky         PaletteKey = "sky"
	PaletteAccent      PaletteKey = "accent"
)

// Strength selects the badge intensity on screen
type Strength string

const (
	StrengthSubtle Strength = "subtle"
	StrengthStrong Strength = "strong"
)

// ParseStrength maps a request value to a Strength, defaulting to subtle
func ParseStrength(s string) Strength {
	if Strength(strings.ToLower(strings.TrimSpace(s))) == StrengthStrong {
		return StrengthStrong
	}
	return StrengthSubtle
}

// Color is an sRGB triple
type Color struct {
	R, G, B int
}

// Dark returns the badge fill used on the printed sheet: every channel at 20%, floored.
func (c Color) Dark() Color {
	return Color{R: c.R * 2 / 10, G: c.G * 2 / 10, B: c.B * 2 / 10}
}

// BadgeClasses are the utility classes the storefront uses to draw a badge
type BadgeClasses struct {
	Bg     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
}

// String joins the classes in bg, border, text order
func (b BadgeClasses) String() string {
	return b.Bg + " " + b.Border + " " + b.Text
}

type paletteEntry struct {
	key      PaletteKey
	keywords []string
	// exact matches the whole normalised label rather than a substring
	exact  []string
	rgb    Color
	subtle BadgeClasses
	strong BadgeClasses
}

func tailwind(family, text string) (BadgeClasses, BadgeClasses) {
	return BadgeClasses{Bg: "bg-" + family + "/15", Border: "border-" + family + "/30", Text: text},
		BadgeClasses{Bg: "bg-" + family + "/20", Border: "border-" + family + "/40", Text: text}
}

func entry(key PaletteKey, rgb Color, family, text string, keywords ...string) paletteEntry {
	subtle, strong := tailwind(family, text)
	return paletteEntry{key: key, keywords: keywords, rgb: rgb, subtle: subtle, strong: strong}
}

// palette is the single ordered keyword table. The first matching entry
// wins, so "grapefruit" lands on purple through "grape".
var palette = func() []paletteEntry {
	cyan := entry(PaletteCyan, Color{6, 182, 212}, "cyan-500", "text-cyan-300", "mint", "menthol", "menta")
	cyan.exact = []string{"ice"}

	amberSubtle := BadgeClasses{Bg: "bg-amber-100/15", Border: "border-amber-100/30", Text: "text-amber-200"}
	amberStrong := BadgeClasses{Bg: "bg-amber-200/20", Border: "border-amber-200/40", Text: "text-amber-200"}

	return []paletteEntry{
		entry(PaletteRed, Color{239, 68, 68}, "red-500", "text-red-300", "strawberry", "morango"),
		entry(PaletteYellow, Color{234, 179, 8}, "yellow-500", "text-yellow-300", "banana"),
		entry(PaletteGreen, Color{34, 197, 94}, "green-500", "text-green-300", "watermelon", "melancia"),
		entry(PalettePurple, Color{168, 85, 247}, "purple-500", "text-purple-300", "grape", "uva"),
		cyan,
		entry(PaletteGreenLight, Color{74, 222, 128}, "green-400", "text-green-300", "apple", "maçã"),
		entry(PaletteOrange, Color{249, 115, 22}, "orange-500", "text-orange-300", "mango", "manga"),
		entry(PaletteOrangeLight, Color{251, 146, 60}, "orange-400", "text-orange-300", "peach", "pêssego"),
		entry(PaletteBlue, Color{59, 130, 246}, "blue-500", "text-blue-300", "blueberry", "mirtilo", "blue"),
		entry(PaletteLime, Color{132, 204, 22}, "lime-500", "text-lime-300", "lime", "lemon", "limão"),
		entry(PaletteEmerald, Color{16, 185, 129}, "emerald-500", "text-emerald-300", "kiwi"),
		{key: PaletteAmber, keywords: []string{"coconut", "coco"}, rgb: Color{217, 119, 6}, subtle: amberSubtle, strong: amberStrong},
		entry(PalettePink, Color{236, 72, 153}, "pink-500", "text-pink-300", "raspberry", "framboesa"),
		entry(PaletteFuchsia, Color{217, 70, 239}, "fuchsia-500", "text-fuchsia-300", "tutti", "splash", "twist"),
		entry(PaletteSlate, Color{148, 163, 184}, "slate-500", "text-slate-300", "clear", "neutro"),
		entry(PaletteRose, Color{244, 63, 94}, "rose-500", "text-rose-300", "grapefruit"),
		entry(PaletteSky, Color{14, 165, 233}, "sky-500", "text-sky-300", "ice"),
	}
}()

var accentEntry = paletteEntry{
	key:    PaletteAccent,
	rgb:    Color{160, 32, 240},
	subtle: BadgeClasses{Bg: "bg-accent/15", Border: "border-accent/30", Text: "text-white"},
	strong: BadgeClasses{Bg: "bg-accent/15", Border: "border-accent/30", Text: "text-white"},
}

var paletteByKey = func() map[PaletteKey]paletteEntry {
	m := make(map[PaletteKey]paletteEntry, len(palette)+1)
	for _, e := range palette {
		m[e.key] = e
	}
	m[PaletteAccent] = accentEntry
	return m
}()

func normalizeLabel(label string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(label)))
}

// Classify maps a variant label to its palette key. It is total: empty and
// unrecognised labels classify as PaletteAccent.
func Classify(label string) PaletteKey {
	lower := normalizeLabel(label)
	if lower == "" {
		return PaletteAccent
	}
	for _, e := range palette {
		for _, x := range e.exact {
			if lower == x {
				return e.key
			}
		}
		for _, kw := range e.keywords {
			if strings.Contains(lower, kw) {
				return e.key
			}
		}
	}
	return PaletteAccent
}

// Badge returns the screen badge classes for a key
func Badge(key PaletteKey, strength Strength) BadgeClasses {
	e, ok := paletteByKey[key]
	if !ok {
		e = accentEntry
	}
	if strength == StrengthStrong {
		return e.strong
	}
	return e.subtle
}

// RGB returns the printed colour for a key
func RGB(key PaletteKey) Color {
	e, ok := paletteByKey[key]
	if !ok {
		return accentEntry.rgb
	}
	return e.rgb
}

// ClassifyBadge classifies a label and returns its screen badge classes
func ClassifyBadge(label string, strength Strength) BadgeClasses {
	return Badge(Classify(label), strength)
}

// ClassifyRGB classifies a label and returns its printed colour
func ClassifyRGB(label string) Color {
	return RGB(Classify(label))
}

// Keys lists every palette key in table order, accent last
func Keys() []PaletteKey {
	keys := make([]PaletteKey, 0, len(palette)+1)
	for _, e := range palette {
		keys = append(keys, e.key)
	}
	return append(keys, PaletteAccent)
}
