package goquery

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/dealscan"
)

// minProminentFontPx is the rendered font size at which text counts as
// visually prominent. Listing titles and prices are the largest text on
// marketplace pages by convention.
const minProminentFontPx = 20

// titleAreaWindow bounds the visible-text prefix scanned for price tokens
// near the title.
const titleAreaWindow = 1000

// parseHTML fetches and parses the document markup. Heuristics that need
// CSS selection share the parsed result.
func parseHTML(ctx context.Context, doc dealscan.Document) (*goquery.Document, error) {
	raw, err := doc.HTML(ctx)
	if err != nil {
		return nil, err
	}
	gdoc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, dealscan.Errorf(dealscan.EINVALID, "failed to parse HTML: %v", err)
	}
	return gdoc, nil
}

// metaTitle reads a machine-readable title from a meta tag. Structured
// metadata is the most reliable signal, so it leads every title cascade.
func metaTitle(gdoc *goquery.Document, selector string) dealscan.Heuristic {
	return func(context.Context, dealscan.Document) (dealscan.Candidate, bool, error) {
		if gdoc == nil {
			return dealscan.Candidate{}, false, nil
		}
		content, ok := gdoc.Find(selector).First().Attr("content")
		if !ok {
			return dealscan.Candidate{}, false, nil
		}
		content = strings.TrimSpace(content)
		if !dealscan.ValidTitle(content) {
			return dealscan.Candidate{}, false, nil
		}
		return dealscan.Candidate{Value: content, Source: "meta"}, true, nil
	}
}

// headingTitle scans conventional heading elements for the first valid title.
func headingTitle(gdoc *goquery.Document, selector string) dealscan.Heuristic {
	return func(context.Context, dealscan.Document) (dealscan.Candidate, bool, error) {
		if gdoc == nil {
			return dealscan.Candidate{}, false, nil
		}
		var found string
		gdoc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if dealscan.ValidTitle(text) {
				found = text
				return false
			}
			return true
		})
		if found == "" {
			return dealscan.Candidate{}, false, nil
		}
		return dealscan.Candidate{Value: found, Source: "heading"}, true, nil
	}
}

// prominentTitle ranks inline text by rendered font size and takes the
// most prominent valid title, preferring document order among ties.
// Unavailable on static documents.
func prominentTitle(selector string) dealscan.Heuristic {
	return func(ctx context.Context, doc dealscan.Document) (dealscan.Candidate, bool, error) {
		spans, err := doc.TextSpans(ctx, selector)
		if err != nil {
			return dealscan.Candidate{}, false, err
		}

		var candidates []dealscan.TextSpan
		for _, span := range spans {
			text := strings.TrimSpace(span.Text)
			if span.FontSizePx >= minProminentFontPx && dealscan.ValidTitle(text) {
				span.Text = text
				candidates = append(candidates, span)
			}
		}
		if len(candidates) == 0 {
			return dealscan.Candidate{}, false, nil
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].FontSizePx > candidates[j].FontSizePx
		})
		return dealscan.Candidate{Value: candidates[0].Text, Source: "prominence"}, true, nil
	}
}

// lineScanTitle returns the first visible-text line that passes the title
// filters. Last-resort fallback for every title cascade.
func lineScanTitle(lines []string) dealscan.Heuristic {
	return func(context.Context, dealscan.Document) (dealscan.Candidate, bool, error) {
		for _, line := range lines {
			if dealscan.ValidTitle(line) {
				return dealscan.Candidate{Value: line, Source: "page-text"}, true, nil
			}
		}
		return dealscan.Candidate{}, false, nil
	}
}

// metaPrice reads a machine-readable price amount from a meta tag and
// renders it currency-prefixed.
func metaPrice(gdoc *goquery.Document, selector string) dealscan.Heuristic {
	return func(context.Context, dealscan.Document) (dealscan.Candidate, bool, error) {
		if gdoc == nil {
			return dealscan.Candidate{}, false, nil
		}
		content, ok := gdoc.Find(selector).First().Attr("content")
		if !ok {
			return dealscan.Candidate{}, false, nil
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
		if err != nil || amount <= 0 {
			return dealscan.Candidate{}, false, nil
		}
		return dealscan.Candidate{Value: "$" + strings.TrimSpace(content), Source: "meta"}, true, nil
	}
}

// priceSpan is a strict price token with its rendering context.
type priceSpan struct {
	text     string
	value    float64
	fontSize float64
}

func collectPriceSpans(ctx context.Context, doc dealscan.Document, selector string) ([]priceSpan, error) {
	spans, err := doc.TextSpans(ctx, selector)
	if err != nil {
		return nil, err
	}

	var prices []priceSpan
	for _, span := range spans {
		text := strings.TrimSpace(span.Text)
		value, ok := dealscan.ParsePrice(text)
		if !ok {
			continue
		}
		prices = append(prices, priceSpan{text: text, value: value, fontSize: span.FontSizePx})
	}
	return prices, nil
}

// prominentPrice takes the largest-font price span at or above the
// prominence threshold. Unavailable on static documents.
func prominentPrice(selector string) dealscan.Heuristic {
	return func(ctx context.Context, doc dealscan.Document) (dealscan.Candidate, bool, error) {
		prices, err := collectPriceSpans(ctx, doc, selector)
		if err != nil {
			return dealscan.Candidate{}, false, err
		}

		var candidates []priceSpan
		for _, p := range prices {
			if p.fontSize >= minProminentFontPx {
				candidates = append(candidates, p)
			}
		}
		if len(candidates) == 0 {
			return dealscan.Candidate{}, false, nil
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].fontSize > candidates[j].fontSize
		})
		return dealscan.Candidate{Value: candidates[0].text, Source: "prominence"}, true, nil
	}
}

// titleAreaPrice scans the first titleAreaWindow characters of visible
// text for price tokens and takes the highest value. The listing price
// sits near the title on marketplace pages.
func titleAreaPrice(text string) dealscan.Heuristic {
	return func(context.Context, dealscan.Document) (dealscan.Candidate, bool, error) {
		window := text
		if len(window) > titleAreaWindow {
			window = window[:titleAreaWindow]
		}

		tokens := dealscan.FindPriceTokens(window)
		if len(tokens) == 0 {
			return dealscan.Candidate{}, false, nil
		}

		best := tokens[0]
		bestValue, _ := dealscan.ParsePrice(best)
		for _, token := range tokens[1:] {
			if value, _ := dealscan.ParsePrice(token); value > bestValue {
				best, bestValue = token, value
			}
		}
		return dealscan.Candidate{Value: best, Source: "title-area"}, true, nil
	}
}

// anyPrice is the last-resort price heuristic: every strict price span on
// the page, ranked by font size descending (with a 2px tolerance treated
// as a tie) and then by value descending.
func anyPrice(selector string) dealscan.Heuristic {
	return func(ctx context.Context, doc dealscan.Document) (dealscan.Candidate, bool, error) {
		prices, err := collectPriceSpans(ctx, doc, selector)
		if err != nil {
			return dealscan.Candidate{}, false, err
		}
		if len(prices) == 0 {
			return dealscan.Candidate{}, false, nil
		}

		sort.SliceStable(prices, func(i, j int) bool {
			if diff := prices[i].fontSize - prices[j].fontSize; diff > 2 || diff < -2 {
				return diff > 0
			}
			return prices[i].value > prices[j].value
		})
		return dealscan.Candidate{Value: prices[0].text, Source: "any-span"}, true, nil
	}
}

// selectorText extracts trimmed text from the first matching element.
// Used by structured sites with stable selectors.
func selectorText(gdoc *goquery.Document, selector string) dealscan.Heuristic {
	return func(context.Context, dealscan.Document) (dealscan.Candidate, bool, error) {
		if gdoc == nil {
			return dealscan.Candidate{}, false, nil
		}
		sel := gdoc.Find(selector).First()
		if sel.Length() == 0 {
			return dealscan.Candidate{}, false, nil
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return dealscan.Candidate{}, false, nil
		}
		return dealscan.Candidate{Value: text, Source: "selector"}, true, nil
	}
}
