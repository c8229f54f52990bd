package catalogsheet

import "time"

// ContentType of generated sheets
const ContentType = "application/pdf"

// Filename names a sheet generated at the given time, e.g.
// catalogo-2026-10-16.pdf. The date is taken in at's own location, so
// callers pass local time to get the local calendar day.
func Filename(at time.Time) string {
	return "catalogo-" + at.Format("2006-01-02") + ".pdf"
}

// UpdatedLabel is the footer stamp, e.g. "Atualizado: 16/10/2026"
func UpdatedLabel(at time.Time) string {
	return "Atualizado: " + at.Format("02/01/2006")
}

// Image is a raster ready to be embedded in the sheet
type Image struct {
	// Name is unique per document and used to register the image once
	Name   string
	Data   []byte
	Format string
	Width  int
	Height int
}

// Document is a finished catalog sheet
type Document struct {
	Filename  string
	Content   []byte
	PageCount int
	ItemCount int
	// ImagesEmbedded counts the items whose image was fetched successfully
	ImagesEmbedded int
	GeneratedAt    time.Time
}

// Size returns the document size in bytes
func (d *Document) Size() int {
	return len(d.Content)
}
