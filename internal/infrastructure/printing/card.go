package printing

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"go.uber.org/zap"
)

// DrawCard draws one item card in the given column of the current row.
// plan must be the plan returned by PlanVariants for this item; badges are
// drawn from it as-is. image may be nil, in which case a placeholder glyph
// is drawn.
func (e *Engine) DrawCard(item catalog.Item, column int, height float64, plan catalogsheet.Plan, image *catalogsheet.Image) error {
	if !e.started {
		return NewRenderError(ErrCodeDocumentNotStarted, "document not started", nil)
	}
	if column < 0 || column > 1 {
		return NewRenderError(ErrCodeInvalidColumn, fmt.Sprintf("column %d out of range", column), nil)
	}
	g := e.geo
	cardX := g.ColumnX(column)
	cardY := e.cursor.Y
	cardW := g.CardWidth()

	e.fill(e.theme.CardBg)
	e.surface.RoundedRect(cardX, cardY, cardW, height, g.CardRadius, "1234", "F")
	e.draw(e.theme.AccentDark)
	e.surface.SetLineWidth(0.5)
	e.surface.RoundedRect(cardX, cardY, cardW, height, g.CardRadius, "1234", "D")

	imgX := cardX + g.CardPadding
	imgY := cardY + g.CardPadding
	e.fill(e.theme.ImageBox)
	e.surface.RoundedRect(imgX, imgY, g.ImageSize, g.ImageSize, 3, "1234", "F")
	if !e.drawImage(item, image, imgX, imgY) {
		e.text(e.theme.Zinc600)
		e.surface.SetFont(fontFamily, "", 20)
		e.surface.Text(imgX+g.ImageSize/2-3, imgY+g.ImageSize/2+5, "?")
	}

	if item.Featured {
		e.fill(e.theme.Accent)
		e.surface.RoundedRect(imgX, imgY, 22, 7, 2, "1234", "F")
		e.text(e.theme.White)
		e.surface.SetFont(fontFamily, "B", 6)
		e.surface.Text(imgX+2, imgY+5, "DESTAQUE")
	}

	infoX := cardX + g.InfoX()
	e.drawName(item.Name, infoX, cardY+12)

	e.text(e.theme.Accent)
	e.surface.SetFont(fontFamily, "B", 16)
	e.surface.Text(infoX, cardY+28, e.tr(item.FormattedPrice()))

	statusY := cardY + 36
	statusColor, statusLabel := e.theme.Green, "Disponivel"
	if !item.Available {
		statusColor, statusLabel = e.theme.Red, "Esgotado"
	}
	e.fill(statusColor)
	e.surface.Circle(infoX+3, statusY, 2, "F")
	e.text(statusColor)
	e.surface.SetFont(fontFamily, "", 9)
	e.surface.Text(infoX+8, statusY+3, statusLabel)

	e.drawBadges(plan, cardX+g.CardPadding, cardY+g.BaseCardHeight-g.BadgeBottomOffset)

	e.markContent(cardY + height)
	e.cursor.Column = column
	return e.surfaceErr("card " + item.ID)
}

func (e *Engine) drawName(name string, x, y float64) {
	g := e.geo
	e.text(e.theme.White)
	e.surface.SetFont(fontFamily, "B", 11)
	measure := func(s string) float64 { return e.surface.GetStringWidth(e.tr(s)) }
	lines := wrapText(name, g.InfoWidth(), measure)
	lines = clampLines(lines, g.NameMaxLines, g.InfoWidth(), measure)
	for i, line := range lines {
		e.surface.Text(x, y+float64(i)*g.NameLineHeight, e.tr(line))
	}
}

// drawBadges paints the planned rows. Widths come from the plan so the
// drawing always matches the height reserved for the row.
func (e *Engine) drawBadges(plan catalogsheet.Plan, x, y float64) {
	g := e.geo
	e.surface.SetFont(fontFamily, "", g.BadgeFontSize)
	rowY := y
	for _, row := range plan.Rows {
		fx := x
		for _, badge := range row.Badges {
			rgb := catalogsheet.ClassifyRGB(badge.Label)
			e.fill(rgb.Dark())
			e.surface.RoundedRect(fx, rowY, badge.Width, g.BadgeHeight, 2, "1234", "F")
			e.text(rgb)
			e.surface.Text(fx+catalogsheet.BadgePadding/2, rowY+5, e.tr(badge.Label))
			fx += badge.Width + catalogsheet.BadgeGap
		}
		rowY += g.BadgeHeight + g.BadgeRowGap
	}
}

// drawImage embeds the item image contained in the image box. It reports
// false when there is nothing to draw or the surface rejected the image.
func (e *Engine) drawImage(item catalog.Item, image *catalogsheet.Image, boxX, boxY float64) bool {
	if image == nil || len(image.Data) == 0 {
		return false
	}
	g := e.geo
	name := image.Name
	if name == "" {
		name = "item-" + item.ID
	}
	opts := fpdf.ImageOptions{ImageType: image.Format, ReadDpi: false}

	if !e.images[name] {
		e.surface.RegisterImageOptionsReader(name, opts, bytes.NewReader(image.Data))
		if e.surface.Err() {
			e.discardImageError(item, e.surface.Error())
			return false
		}
		e.images[name] = true
	}

	inner := g.ImageSize - 2*g.ImageInset
	w, h := inner, inner
	if image.Width > 0 && image.Height > 0 {
		ratio := float64(image.Width) / float64(image.Height)
		if ratio > 1 {
			h = inner / ratio
		} else {
			w = inner * ratio
		}
	}
	x := boxX + g.ImageInset + (inner-w)/2
	y := boxY + g.ImageInset + (inner-h)/2
	e.surface.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if e.surface.Err() {
		e.discardImageError(item, e.surface.Error())
		return false
	}
	return true
}

func (e *Engine) discardImageError(item catalog.Item, err error) {
	e.logger.Warn("failed to embed item image",
		zap.String("item_id", item.ID),
		zap.Error(err),
	)
	e.surface.ClearError()
}
