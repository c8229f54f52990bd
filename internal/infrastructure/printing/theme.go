package printing

import "github.com/storefront/backend/internal/domain/catalogsheet"

// Color aliases the domain colour so callers can pass palette colours directly
type Color = catalogsheet.Color

// Theme is the colour scheme of the sheet
type Theme struct {
	White      Color
	Accent     Color
	AccentDark Color
	Secondary  Color
	Green      Color
	Red        Color
	RedDark    Color
	Zinc400    Color
	Zinc600    Color
	CardBg     Color
	DarkBg     Color
	ImageBox   Color
	// Glow is the lower right decoration circle
	Glow Color
	// ContactBg fills the contact pill in the footer
	ContactBg Color
}

// DefaultTheme is the dark storefront look
func DefaultTheme() Theme {
	return Theme{
		White:      Color{R: 255, G: 255, B: 255},
		Accent:     Color{R: 160, G: 32, B: 240},
		AccentDark: Color{R: 80, G: 16, B: 120},
		Secondary:  Color{R: 0, G: 191, B: 255},
		Green:      Color{R: 34, G: 197, B: 94},
		Red:        Color{R: 239, G: 68, B: 68},
		RedDark:    Color{R: 80, G: 20, B: 20},
		Zinc400:    Color{R: 161, G: 161, B: 170},
		Zinc600:    Color{R: 82, G: 82, B: 91},
		CardBg:     Color{R: 18, G: 18, B: 24},
		DarkBg:     Color{R: 8, G: 8, B: 12},
		ImageBox:   Color{R: 25, G: 25, B: 32},
		Glow:       Color{R: 0, G: 50, B: 80},
		ContactBg:  Color{R: 22, G: 80, B: 50},
	}
}

// Geometry holds the layout constants in millimetres
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64

	CardGap        float64
	BaseCardHeight float64
	CardPadding    float64
	CardRadius     float64
	ImageSize      float64
	ImageInset     float64

	HeaderHeight    float64
	HeaderPanel     float64
	HeaderSpacing   float64
	HeaderBuffer    float64
	CategorySpacing float64

	// RowBottomReserve is kept free below every card row
	RowBottomReserve float64

	BadgeHeight   float64
	BadgeRowGap   float64
	BadgeFontSize float64
	// BadgeBottomOffset positions the first badge row above the card bottom
	BadgeBottomOffset float64

	NameLineHeight float64
	NameMaxLines   int

	FooterOffset float64
}

// A4Portrait is the geometry of the printed catalog
func A4Portrait() Geometry {
	return Geometry{
		PageWidth:  210,
		PageHeight: 297,
		Margin:     8,

		CardGap:        6,
		BaseCardHeight: 58,
		CardPadding:    4,
		CardRadius:     4,
		ImageSize:      42,
		ImageInset:     2,

		HeaderHeight:    14,
		HeaderPanel:     12,
		HeaderSpacing:   2,
		HeaderBuffer:    5,
		CategorySpacing: 4,

		RowBottomReserve: 15,

		BadgeHeight:       7,
		BadgeRowGap:       2,
		BadgeFontSize:     7,
		BadgeBottomOffset: 10,

		NameLineHeight: 4.5,
		NameMaxLines:   2,

		FooterOffset: 14,
	}
}

// ContentWidth is the printable width between the side margins
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// CardWidth is the width of one of the two card columns
func (g Geometry) CardWidth() float64 {
	return (g.ContentWidth() - g.CardGap) / 2
}

// ColumnX returns the left edge of a card column
func (g Geometry) ColumnX(column int) float64 {
	if column <= 0 {
		return g.Margin
	}
	return g.Margin + g.CardWidth() + g.CardGap
}

// VariantMaxWidth is the width available to a row of variant badges
func (g Geometry) VariantMaxWidth() float64 {
	return g.CardWidth() - 2*g.CardPadding
}

// InfoX is the offset of the text column inside a card
func (g Geometry) InfoX() float64 {
	return g.CardPadding + g.ImageSize + 6
}

// InfoWidth is the width of the text column inside a card
func (g Geometry) InfoWidth() float64 {
	return g.CardWidth() - g.InfoX() - g.CardPadding
}

// RowHeight is the height of a card with the given number of badge rows
func (g Geometry) RowHeight(badgeRows int) float64 {
	extra := max(badgeRows, 1) - 1
	return g.BaseCardHeight + float64(extra)*(g.BadgeHeight+g.BadgeRowGap)
}

// FooterY is the baseline area of the footer
func (g Geometry) FooterY() float64 {
	return g.PageHeight - g.FooterOffset
}

// FooterTop is the highest point the footer draws on, its separator line
func (g Geometry) FooterTop() float64 {
	return g.FooterY() - 4
}

// UsableHeight is the tallest row a fresh page can hold
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.Margin - g.RowBottomReserve
}
