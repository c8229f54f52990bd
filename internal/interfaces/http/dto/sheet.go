package dto

import (
	"encoding/base64"
	"time"

	"github.com/storefront/backend/internal/domain/catalogsheet"
)

// SheetProgressEvent is the payload of an SSE progress event
type SheetProgressEvent struct {
	Percent int `json:"percent" example:"40"`
}

// SheetDocumentEvent is the payload of the final SSE document event
// @Description Generated catalog sheet with base64 content
type SheetDocumentEvent struct {
	Filename       string    `json:"filename" example:"catalogo-2026-10-16.pdf"`
	ContentType    string    `json:"content_type" example:"application/pdf"`
	Size           int       `json:"size" example:"482133"`
	PageCount      int       `json:"page_count" example:"4"`
	ItemCount      int       `json:"item_count" example:"20"`
	ImagesEmbedded int       `json:"images_embedded" example:"18"`
	GeneratedAt    time.Time `json:"generated_at"`
	Content        string    `json:"content"`
}

// ToSheetDocumentEvent converts a generated document to its event payload
func ToSheetDocumentEvent(doc *catalogsheet.Document) SheetDocumentEvent {
	return SheetDocumentEvent{
		Filename:       doc.Filename,
		ContentType:    catalogsheet.ContentType,
		Size:           doc.Size(),
		PageCount:      doc.PageCount,
		ItemCount:      doc.ItemCount,
		ImagesEmbedded: doc.ImagesEmbedded,
		GeneratedAt:    doc.GeneratedAt,
		Content:        base64.StdEncoding.EncodeToString(doc.Content),
	}
}
