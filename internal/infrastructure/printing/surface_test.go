package printing

import (
	"github.com/go-pdf/fpdf"
)

type rectCall struct {
	X, Y, W, H float64
	Style      string
}

type textCall struct {
	X, Y float64
	Text string
	Page int
}

// recordingSurface is a real fpdf document that also records what was drawn
type recordingSurface struct {
	*fpdf.Fpdf
	events     []string
	roundRects []rectCall
	texts      []textCall
	rects      int
	images     int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{Fpdf: NewSurface(DocumentInfo{Title: "Catálogo", Creator: "test"})}
}

func (r *recordingSurface) AddPage() {
	r.events = append(r.events, "page")
	r.Fpdf.AddPage()
}

func (r *recordingSurface) Rect(x, y, w, h float64, style string) {
	r.rects++
	r.Fpdf.Rect(x, y, w, h, style)
}

func (r *recordingSurface) RoundedRect(x, y, w, h, rad float64, corners string, style string) {
	r.roundRects = append(r.roundRects, rectCall{X: x, Y: y, W: w, H: h, Style: style})
	r.Fpdf.RoundedRect(x, y, w, h, rad, corners, style)
}

func (r *recordingSurface) Text(x, y float64, s string) {
	r.events = append(r.events, "text:"+s)
	r.texts = append(r.texts, textCall{X: x, Y: y, Text: s, Page: r.Fpdf.PageNo()})
	r.Fpdf.Text(x, y, s)
}

func (r *recordingSurface) ImageOptions(name string, x, y, w, h float64, flow bool, opts fpdf.ImageOptions, link int, linkStr string) {
	r.images++
	r.Fpdf.ImageOptions(name, x, y, w, h, flow, opts, link, linkStr)
}

func (r *recordingSurface) textsEqual(s string) []textCall {
	var out []textCall
	for _, t := range r.texts {
		if t.Text == s {
			out = append(out, t)
		}
	}
	return out
}

// badgeRects returns the rounded rects of the given height at or below minY
func (r *recordingSurface) badgeRects(height, minY float64) []rectCall {
	var out []rectCall
	for _, rc := range r.roundRects {
		if rc.H == height && rc.Y >= minY {
			out = append(out, rc)
		}
	}
	return out
}

func (r *recordingSurface) indexOf(event string) int {
	for i, e := range r.events {
		if e == event {
			return i
		}
	}
	return -1
}
