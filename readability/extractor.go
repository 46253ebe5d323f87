// Package readability provides a ContentExtractor backed by go-readability.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/fwojciec/dealscan"
)

// Ensure Extractor implements dealscan.ContentExtractor at compile time.
var _ dealscan.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to pull main content out of listing
// pages on sites with no known structure.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText processes raw HTML and returns the main content as plain
// text.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", dealscan.Errorf(dealscan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(article.TextContent), nil
}
