package dealscan

import "context"

// TextSpan is an inline text-bearing element with its rendered font size.
// Position preserves document order for tie-breaking.
type TextSpan struct {
	Text       string
	FontSizePx float64
	Position   int
}

// PageImage is a candidate image element observed on a page.
type PageImage struct {
	// URL is the resolved image source. Empty when the element has no
	// usable src.
	URL string

	// NaturalWidth and NaturalHeight are the intrinsic dimensions in
	// pixels. Static documents report declared width/height attributes
	// instead; zero means unknown.
	NaturalWidth  int
	NaturalHeight int

	// Complete reports whether the image has finished loading.
	// Always true for static documents.
	Complete bool
}

// Document represents a live marketplace page handle. The core never
// fetches pages itself; a Document is supplied by the hosting environment
// (a rendering browser session or a static HTML snapshot).
//
// Rendered implementations support the full surface. Static implementations
// return ENOTIMPLEMENTED from TextSpans and CaptureImage, and extraction
// strategies degrade to the next fallback heuristic.
type Document interface {
	// URL returns the page's resolved URL.
	URL() string

	// HTML returns the page markup.
	HTML(ctx context.Context) (string, error)

	// VisibleText returns the page's visible text with line structure
	// preserved (one line per block-level run, as a user would read it).
	VisibleText(ctx context.Context) (string, error)

	// TextSpans returns the inline elements matching the CSS selector
	// together with their rendered font sizes, in document order.
	// Returns ENOTIMPLEMENTED when the document is not rendered.
	TextSpans(ctx context.Context, selector string) ([]TextSpan, error)

	// Images returns candidate image elements matching the CSS selector,
	// in document order.
	Images(ctx context.Context, selector string) ([]PageImage, error)

	// CaptureImage rasterizes the image at url onto an offscreen canvas,
	// downscaled to maxEdge pixels (aspect-ratio preserving), and returns
	// a JPEG data URL encoded at the given quality. Implementations wait
	// up to a bounded timeout for the image to finish loading.
	// Returns ENOTIMPLEMENTED when the document is not rendered.
	CaptureImage(ctx context.Context, url string, maxEdge int, quality float64) (string, error)
}
