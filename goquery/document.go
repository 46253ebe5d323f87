// Package goquery provides the static document implementation and the
// marketplace extraction strategies. Strategies operate on the
// dealscan.Document interface so they work against both rendered (rod)
// and static (this package) documents; heuristics that require rendering
// degrade to the next fallback on static documents.
package goquery

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dealscan"
	"golang.org/x/net/html"
)

// Ensure StaticDocument implements dealscan.Document at compile time.
var _ dealscan.Document = (*StaticDocument)(nil)

// StaticDocument is a dealscan.Document backed by a parsed HTML snapshot.
// It has no rendering information: TextSpans and CaptureImage return
// ENOTIMPLEMENTED, and image dimensions come from declared width/height
// attributes.
type StaticDocument struct {
	url  string
	raw  string
	doc  *goquery.Document
	base *url.URL
}

// NewStaticDocument parses rawHTML into a StaticDocument. pageURL is used
// for routing and for resolving relative image sources.
func NewStaticDocument(rawHTML, pageURL string) (*StaticDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, dealscan.Errorf(dealscan.EINVALID, "failed to parse HTML: %v", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, dealscan.Errorf(dealscan.EINVALID, "invalid page URL: %v", err)
	}

	return &StaticDocument{url: pageURL, raw: rawHTML, doc: doc, base: base}, nil
}

// URL returns the page URL.
func (d *StaticDocument) URL() string {
	return d.url
}

// HTML returns the original markup.
func (d *StaticDocument) HTML(_ context.Context) (string, error) {
	return d.raw, nil
}

// VisibleText returns the page's visible text, one line per block-level run.
func (d *StaticDocument) VisibleText(_ context.Context) (string, error) {
	var sb strings.Builder
	for _, n := range d.doc.Nodes {
		writeVisibleText(&sb, n)
	}
	return sb.String(), nil
}

// TextSpans reports ENOTIMPLEMENTED: a static document has no rendered
// font sizes, so visual-prominence heuristics are unavailable.
func (d *StaticDocument) TextSpans(_ context.Context, _ string) ([]dealscan.TextSpan, error) {
	return nil, dealscan.Errorf(dealscan.ENOTIMPLEMENTED, "text spans require a rendered document")
}

// Images returns candidate images matching the selector. Dimensions come
// from width/height attributes; zero means unknown.
func (d *StaticDocument) Images(_ context.Context, selector string) ([]dealscan.PageImage, error) {
	var images []dealscan.PageImage
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		images = append(images, dealscan.PageImage{
			URL:           d.resolve(src),
			NaturalWidth:  attrInt(sel, "width"),
			NaturalHeight: attrInt(sel, "height"),
			Complete:      true,
		})
	})
	return images, nil
}

// CaptureImage reports ENOTIMPLEMENTED: rasterization requires a rendering
// document; proxy-mode harvesting degrades to omission on static documents.
func (d *StaticDocument) CaptureImage(_ context.Context, _ string, _ int, _ float64) (string, error) {
	return "", dealscan.Errorf(dealscan.ENOTIMPLEMENTED, "image capture requires a rendered document")
}

// resolve resolves an image src against the page URL.
func (d *StaticDocument) resolve(src string) string {
	if src == "" {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return d.base.ResolveReference(ref).String()
}

func attrInt(sel *goquery.Selection, name string) int {
	v, ok := sel.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil {
		return 0
	}
	return n
}

// skippedElements never contribute visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// blockElements break the text into separate lines, mirroring how a
// rendered page presents them.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "div": true, "dd": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true,
	"ul": true,
}

func writeVisibleText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		if skippedElements[n.Data] {
			return
		}
		if blockElements[n.Data] {
			sb.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(sb, c)
	}

	if n.Type == html.ElementNode && blockElements[n.Data] {
		sb.WriteString("\n")
	}
}
