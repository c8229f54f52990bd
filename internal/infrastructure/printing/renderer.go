package printing

import (
	"errors"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// Surface is the drawing API the layout engine needs. *fpdf.Fpdf satisfies it.
type Surface interface {
	AddPage()
	PageNo() int
	PageCount() int
	GetPageSize() (width, height float64)

	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetLineWidth(width float64)
	SetFont(familyStr, styleStr string, size float64)

	Rect(x, y, w, h float64, styleStr string)
	RoundedRect(x, y, w, h, r float64, corners string, stylestr string)
	Circle(x, y, r float64, styleStr string)
	Line(x1, y1, x2, y2 float64)
	Text(x, y float64, txtStr string)
	GetStringWidth(s string) float64

	RegisterImageOptionsReader(imgName string, options fpdf.ImageOptions, r io.Reader) *fpdf.ImageInfoType
	ImageOptions(imageNameStr string, x, y, w, h float64, flow bool, options fpdf.ImageOptions, link int, linkStr string)

	Err() bool
	Error() error
	ClearError()
	Output(w io.Writer) error
}

// DocumentInfo is the metadata written into the PDF
type DocumentInfo struct {
	Title   string
	Author  string
	Creator string
	// CreatedAt is stamped as the creation date; zero means now
	CreatedAt time.Time
}

// NewSurface creates an A4 portrait surface in millimetres with automatic
// page breaks disabled; the engine decides where pages break.
func NewSurface(info DocumentInfo) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
	}
	if info.Creator != "" {
		pdf.SetCreator(info.Creator, true)
	}
	if !info.CreatedAt.IsZero() {
		pdf.SetCreationDate(info.CreatedAt)
	}
	return pdf
}

// RenderError represents an error during sheet rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderFailed       = "RENDER_FAILED"
	ErrCodeImpossibleGeometry = "IMPOSSIBLE_GEOMETRY"
	ErrCodeMalformedMeasure   = "MALFORMED_MEASUREMENT"
	ErrCodeInvalidColumn      = "INVALID_COLUMN"
	ErrCodeSurfaceFailed      = "SURFACE_FAILED"
	ErrCodeDocumentNotStarted = "DOCUMENT_NOT_STARTED"
	ErrCodeOutputFailed       = "OUTPUT_FAILED"
)

// ErrImpossibleGeometry is the cause used when a row cannot fit on any page
var ErrImpossibleGeometry = errors.New("row does not fit on an empty page")

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
