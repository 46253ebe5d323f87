package dealscan

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// MaxListingImages is the maximum number of images harvested per listing.
// The cap bounds the payload sent to downstream inference.
const MaxListingImages = 10

// ImageKind distinguishes the two image representations a harvest can produce.
type ImageKind string

// ImageKind constants.
const (
	// ImageInline is a rasterized, inline-encoded payload (JPEG data URL).
	// Used when the image host restricts hotlinking.
	ImageInline ImageKind = "inline"

	// ImageRemote is a publicly accessible image URL.
	ImageRemote ImageKind = "remote"
)

// ImageRef references a harvested listing image. It is created during
// harvesting and immutable afterward.
type ImageRef struct {
	Kind ImageKind `json:"kind"`

	// Data holds the data URL payload for ImageInline refs.
	Data string `json:"data,omitempty"`

	// URL holds the absolute image URL for ImageRemote refs.
	URL string `json:"url,omitempty"`
}

// Listing is the canonical extraction output for a marketplace page.
// All textual fields default to the empty string, never absent, so
// consumers never branch on nil.
type Listing struct {
	Title       string     `json:"title"`
	Price       string     `json:"price"`
	Description string     `json:"description"`
	Images      []ImageRef `json:"images"`
	SourceURL   string     `json:"sourceUrl"`
}

// Validate returns EINVALID when the listing carries no usable signal.
// This is the pre-flight gate: an unscrapeable page is rejected before
// any quota is spent on network lookups.
func (l *Listing) Validate() error {
	if l.Title == "" && l.Price == "" && l.Description == "" {
		return Errorf(EINVALID, "could not extract listing information: title, price and description are all empty")
	}
	return nil
}

// Hash returns a content hash of the listing's textual fields.
// Two scrapes of an unchanged page hash identically.
func (l *Listing) Hash() string {
	h := xxhash.New()
	_, _ = h.WriteString(l.Title)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(l.Price)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(l.Description)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(l.SourceURL)
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
