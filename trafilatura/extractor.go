// Package trafilatura provides a ContentExtractor backed by
// go-trafilatura, with an optional fallback extractor for pages it
// cannot segment.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"github.com/fwojciec/dealscan"
)

// Ensure Extractor implements dealscan.ContentExtractor at compile time.
var _ dealscan.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull main content out of listing
// pages on sites with no known structure.
type Extractor struct {
	fallback dealscan.ContentExtractor
}

// NewExtractor creates a new Extractor. fallback, if non-nil, handles
// pages trafilatura yields nothing for.
func NewExtractor(fallback dealscan.ContentExtractor) *Extractor {
	return &Extractor{fallback: fallback}
}

// ExtractText processes raw HTML and returns the main content as plain
// text with line structure preserved.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", dealscan.Errorf(dealscan.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err == nil {
		if text := strings.TrimSpace(result.ContentText); text != "" {
			return text, nil
		}
	}

	if e.fallback != nil {
		return e.fallback.ExtractText(rawHTML)
	}
	if err != nil {
		return "", err
	}
	return "", nil
}
