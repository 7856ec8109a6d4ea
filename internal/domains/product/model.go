package product

import (
	"time"

	"jewelry-backend/internal/domains/category"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImageMetadata records the published renditions of one product image.
type ImageMetadata struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int64  `json:"size"`
}

// Product is a catalog item. Images, ImageFileIDs and ImageMetadataList
// are parallel sequences: index i of each describes the same published
// asset. ImageFileIDs carries the deletion handles; an empty handle means
// cleanup for that asset is skipped (logged, best effort).
//
// The singular Image / ImageFileID / ImageMetadata fields are a legacy
// schema generation that stored exactly one image. They mirror the first
// element of the sequences on every write so old clients keep working,
// and Normalize lifts legacy-only documents into the sequence form on
// every read.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryID  uuid.UUID       `json:"categoryId"`

	Images            []string        `json:"images"`
	ImageFileIDs      []string        `json:"imageFileIds"`
	ImageMetadataList []ImageMetadata `json:"imageMetadataList"`

	Image         *string        `json:"image,omitempty"`
	ImageFileID   *string        `json:"imageFileId,omitempty"`
	ImageMetadata *ImageMetadata `json:"imageMetadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Category is denormalized into responses at read time and is never
	// stored on the document.
	Category *category.Category `json:"category,omitempty"`
}

// Normalize lifts a legacy single-image document into the sequence form:
// a product with a legacy image but an empty sequence gets a one-element
// sequence synthesized from the legacy slots. Runs at the storage
// boundary on every read so consumers only ever see the sequence shape.
func (p *Product) Normalize() {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.ImageFileIDs == nil {
		p.ImageFileIDs = []string{}
	}
	if p.ImageMetadataList == nil {
		p.ImageMetadataList = []ImageMetadata{}
	}

	if len(p.Images) > 0 || p.Image == nil || *p.Image == "" {
		return
	}

	p.Images = []string{*p.Image}

	handle := ""
	if p.ImageFileID != nil {
		handle = *p.ImageFileID
	}
	p.ImageFileIDs = []string{handle}

	meta := ImageMetadata{URL: *p.Image}
	if p.ImageMetadata != nil {
		meta = *p.ImageMetadata
	}
	p.ImageMetadataList = []ImageMetadata{meta}
}

// SyncLegacy mirrors the first image of the sequence into the legacy
// single-value slots, or clears them when the product has no images.
// Runs before every write.
func (p *Product) SyncLegacy() {
	if len(p.Images) == 0 {
		p.Image = nil
		p.ImageFileID = nil
		p.ImageMetadata = nil
		return
	}

	first := p.Images[0]
	p.Image = &first

	p.ImageFileID = nil
	if len(p.ImageFileIDs) > 0 && p.ImageFileIDs[0] != "" {
		handle := p.ImageFileIDs[0]
		p.ImageFileID = &handle
	}

	p.ImageMetadata = nil
	if len(p.ImageMetadataList) > 0 {
		meta := p.ImageMetadataList[0]
		p.ImageMetadata = &meta
	}
}
