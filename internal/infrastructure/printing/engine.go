package printing

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/catalogsheet"
	"go.uber.org/zap"
)

const fontFamily = "helvetica"

// Cursor tracks where the next element goes
type Cursor struct {
	Y      float64
	Page   int
	Column int
	// BackgroundDrawn is set once the current page has its background
	BackgroundDrawn bool
	// Fresh is true while nothing but the background is on the page
	Fresh bool
}

// FooterContent is the text of the closing footer
type FooterContent struct {
	UpdatedAt time.Time
	AgeNotice string
	Contact   string
}

// DefaultFooter returns the storefront footer stamped with at
func DefaultFooter(at time.Time) FooterContent {
	return FooterContent{
		UpdatedAt: at,
		AgeNotice: "PROIBIDO MENORES DE 18",
		Contact:   "(61) 98213-1123",
	}
}

// Option configures an Engine
type Option func(*Engine)

// WithGeometry overrides the page geometry
func WithGeometry(g Geometry) Option {
	return func(e *Engine) { e.geo = g }
}

// WithTheme overrides the colour scheme
func WithTheme(t Theme) Option {
	return func(e *Engine) { e.theme = t }
}

// WithLogger sets the logger for the engine
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTranslator sets the function converting UTF-8 text to the encoding of
// the core fonts. NewEngine uses the surface's cp1252 translator when the
// surface provides one.
func WithTranslator(tr func(string) string) Option {
	return func(e *Engine) {
		if tr != nil {
			e.tr = tr
		}
	}
}

type translatorSource interface {
	UnicodeTranslatorFromDescriptor(cpStr string) func(string) string
}

// Engine lays out catalog cards, category headers and the footer on a
// Surface, breaking pages before content would cross the bottom reserve.
type Engine struct {
	surface Surface
	geo     Geometry
	theme   Theme
	tr      func(string) string
	logger  *zap.Logger

	cursor        Cursor
	started       bool
	contentBottom float64
	images        map[string]bool
}

// NewEngine creates an Engine drawing on surface
func NewEngine(surface Surface, opts ...Option) *Engine {
	e := &Engine{
		surface: surface,
		geo:     A4Portrait(),
		theme:   DefaultTheme(),
		tr:      func(s string) string { return s },
		logger:  zap.NewNop(),
		images:  make(map[string]bool),
	}
	if ts, ok := surface.(translatorSource); ok {
		e.tr = ts.UnicodeTranslatorFromDescriptor("")
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Geometry returns the engine geometry
func (e *Engine) Geometry() Geometry {
	return e.geo
}

// Cursor returns a copy of the layout cursor
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// BeginDocument adds the first page and paints its background
func (e *Engine) BeginDocument() error {
	if e.started {
		return nil
	}
	e.surface.AddPage()
	e.started = true
	e.adoptPageSize(e.surface.GetPageSize())
	e.StartPage()
	return e.surfaceErr("begin document")
}

// pageSizeTolerance absorbs the point to millimetre round trip of fpdf,
// which reports A4 as 210.00078 x 297.00008.
const pageSizeTolerance = 0.5

// adoptPageSize switches to the surface page size only when it is really a
// different paper, keeping the exact geometry constants otherwise.
func (e *Engine) adoptPageSize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if math.Abs(w-e.geo.PageWidth) <= pageSizeTolerance && math.Abs(h-e.geo.PageHeight) <= pageSizeTolerance {
		return
	}
	e.geo.PageWidth, e.geo.PageHeight = w, h
}

// StartPage paints the page background and resets the cursor to the top
// margin. Calling it again on the same page does nothing.
func (e *Engine) StartPage() {
	page := e.surface.PageNo()
	if e.cursor.BackgroundDrawn && e.cursor.Page == page {
		return
	}

	w, h := e.geo.PageWidth, e.geo.PageHeight
	e.fill(e.theme.DarkBg)
	e.surface.Rect(0, 0, w, h, "F")
	e.fill(e.theme.AccentDark)
	e.surface.Circle(w*0.3, -30, 80, "F")
	e.fill(e.theme.Glow)
	e.surface.Circle(w+20, h+20, 60, "F")

	e.cursor = Cursor{Y: e.geo.Margin, Page: page, BackgroundDrawn: true, Fresh: true}
	e.contentBottom = e.geo.Margin
}

func (e *Engine) newPage() {
	e.surface.AddPage()
	e.StartPage()
	e.logger.Debug("page break", zap.Int("page", e.cursor.Page))
}

// WillFit reports whether required millimetres fit below the cursor while
// keeping bottomReserve free at the bottom of the page.
func (e *Engine) WillFit(required, bottomReserve float64) bool {
	return e.cursor.Y+required <= e.geo.PageHeight-bottomReserve
}

// EnsureHeaderSpace breaks the page unless a category header, its first card
// row and a small buffer fit above the row reserve, so a header always shares
// its page with the first row. Returns whether a page break happened. An
// empty page never breaks.
func (e *Engine) EnsureHeaderSpace(firstRowHeight float64) (bool, error) {
	if !e.started {
		return false, NewRenderError(ErrCodeDocumentNotStarted, "document not started", nil)
	}
	required := e.geo.HeaderHeight + e.geo.HeaderSpacing + firstRowHeight + e.geo.HeaderBuffer
	if e.cursor.Fresh || e.WillFit(required, e.geo.RowBottomReserve) {
		return false, nil
	}
	e.newPage()
	return true, e.surfaceErr("page break")
}

// EnsureRowSpace breaks the page when a row of the given height would cross
// the row reserve. A row taller than an empty page is an error.
func (e *Engine) EnsureRowSpace(height float64) (bool, error) {
	if !e.started {
		return false, NewRenderError(ErrCodeDocumentNotStarted, "document not started", nil)
	}
	if height > e.geo.UsableHeight() {
		return false, NewRenderError(ErrCodeImpossibleGeometry,
			fmt.Sprintf("row height %.1fmm exceeds usable page height %.1fmm", height, e.geo.UsableHeight()),
			ErrImpossibleGeometry)
	}
	if e.WillFit(height, e.geo.RowBottomReserve) || e.cursor.Fresh {
		return false, nil
	}
	e.newPage()
	e.cursor.Column = 0
	return true, e.surfaceErr("page break")
}

// DrawCategoryHeader draws the category banner and advances past it
func (e *Engine) DrawCategoryHeader(name string, count int) error {
	g := e.geo
	y := e.cursor.Y

	e.fill(e.theme.AccentDark)
	e.surface.RoundedRect(g.Margin, y, g.ContentWidth(), g.HeaderPanel, 3, "1234", "F")
	e.fill(e.theme.Accent)
	e.surface.RoundedRect(g.Margin, y, 3, g.HeaderPanel, 1, "1234", "F")

	e.text(e.theme.Accent)
	e.surface.SetFont(fontFamily, "B", 14)
	e.surface.Text(g.Margin+8, y+9, e.tr(upper(name)))

	e.text(e.theme.Zinc400)
	e.surface.SetFont(fontFamily, "", 10)
	label := e.tr(strconv.Itoa(count) + " itens")
	e.surface.Text(g.PageWidth-g.Margin-5-e.surface.GetStringWidth(label), y+9, label)

	e.markContent(y + g.HeaderPanel)
	e.cursor.Y += g.HeaderHeight + g.HeaderSpacing
	e.cursor.Column = 0
	return e.surfaceErr("category header")
}

// MeasureBadgeText returns the width of a badge label in the badge font
func (e *Engine) MeasureBadgeText(label string) float64 {
	e.surface.SetFont(fontFamily, "", e.geo.BadgeFontSize)
	return e.surface.GetStringWidth(e.tr(label))
}

// PlanVariants wraps an item's variant labels into badge rows that fit a card
func (e *Engine) PlanVariants(item catalog.Item) (catalogsheet.Plan, error) {
	plan, err := catalogsheet.Pack(item.Variants, e.geo.VariantMaxWidth(), e.MeasureBadgeText)
	if err != nil {
		if errors.Is(err, catalogsheet.ErrMalformedMeasurement) {
			return plan, NewRenderError(ErrCodeMalformedMeasure, "cannot plan variants of item "+item.ID, err)
		}
		return plan, NewRenderError(ErrCodeRenderFailed, "cannot plan variants of item "+item.ID, err)
	}
	return plan, nil
}

// ComputeRowHeight returns the height of a card row, sized by whichever
// card needs more badge rows. right is nil for a lone card.
func (e *Engine) ComputeRowHeight(left, right *catalogsheet.Plan) float64 {
	rows := 1
	if left != nil {
		rows = max(rows, left.RowCount())
	}
	if right != nil {
		rows = max(rows, right.RowCount())
	}
	return e.geo.RowHeight(rows)
}

// AdvanceRow moves the cursor below a row of the given height
func (e *Engine) AdvanceRow(height float64) {
	e.cursor.Y += height + e.geo.CardGap
	e.cursor.Column = 0
}

// AdvanceCategory adds the spacing between categories
func (e *Engine) AdvanceCategory() {
	e.cursor.Y += e.geo.CategorySpacing
}

// DrawFooter draws the footer band on the current page. When drawn content
// already reaches into the band the footer goes on a fresh page.
func (e *Engine) DrawFooter(content FooterContent) error {
	if !e.started {
		return NewRenderError(ErrCodeDocumentNotStarted, "document not started", nil)
	}
	g := e.geo
	if e.contentBottom > g.FooterTop()-1 {
		e.newPage()
	}
	footerY := g.FooterY()

	e.draw(e.theme.Accent)
	e.surface.SetLineWidth(0.5)
	e.surface.Line(g.Margin, footerY-4, g.PageWidth-g.Margin, footerY-4)

	e.fill(e.theme.RedDark)
	e.surface.RoundedRect(g.Margin, footerY, 75, 10, 3, "1234", "F")
	e.text(e.theme.Red)
	e.surface.SetFont(fontFamily, "B", 8)
	e.surface.Text(g.Margin+3, footerY+7, e.tr(content.AgeNotice))

	e.fill(e.theme.ContactBg)
	e.surface.RoundedRect(g.PageWidth-g.Margin-60, footerY, 60, 10, 3, "1234", "F")
	e.text(e.theme.White)
	e.surface.SetFont(fontFamily, "B", 9)
	e.surface.Text(g.PageWidth-g.Margin-57, footerY+7, e.tr(content.Contact))

	e.text(e.theme.Zinc400)
	e.surface.SetFont(fontFamily, "", 8)
	stamp := e.tr(catalogsheet.UpdatedLabel(content.UpdatedAt))
	e.surface.Text(g.PageWidth/2-e.surface.GetStringWidth(stamp)/2, footerY+7, stamp)

	e.markContent(footerY + 10)
	return e.surfaceErr("footer")
}

// Finish writes the document to w and returns its page count
func (e *Engine) Finish(w io.Writer) (int, error) {
	if !e.started {
		return 0, NewRenderError(ErrCodeDocumentNotStarted, "document not started", nil)
	}
	if err := e.surfaceErr("finish"); err != nil {
		return 0, err
	}
	pages := e.surface.PageCount()
	if err := e.surface.Output(w); err != nil {
		return 0, NewRenderError(ErrCodeOutputFailed, "failed to write document", err)
	}
	return pages, nil
}

func (e *Engine) markContent(bottom float64) {
	e.cursor.Fresh = false
	if bottom > e.contentBottom {
		e.contentBottom = bottom
	}
}

func (e *Engine) surfaceErr(stage string) error {
	if !e.surface.Err() {
		return nil
	}
	return NewRenderError(ErrCodeSurfaceFailed, stage+" failed", e.surface.Error())
}

func (e *Engine) fill(c Color) {
	e.surface.SetFillColor(c.R, c.G, c.B)
}

func (e *Engine) draw(c Color) {
	e.surface.SetDrawColor(c.R, c.G, c.B)
}

func (e *Engine) text(c Color) {
	e.surface.SetTextColor(c.R, c.G, c.B)
}
