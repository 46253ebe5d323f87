package dealscan

import (
	"regexp"
	"strconv"
	"strings"
)

// Title length band. Anything outside it is UI chrome or a paragraph,
// not a listing title.
const (
	MinTitleLen = 3
	MaxTitleLen = 200
)

// DescriptionDelimiter joins the surviving description fragments on
// unstructured sites.
const DescriptionDelimiter = " | "

// uiChromePhrases is the denylist of navigation and chrome strings that
// marketplace pages surface near listing content. Matching is
// case-insensitive substring containment, same as the per-phrase checks
// it replaces.
var uiChromePhrases = []string{
	"Facebook",
	"Marketplace",
	"notification",
	"Notifications",
	"Details",
	"Notification Details",
	"settings",
	"New notification",
	"Message seller",
	"Send message",
	"Share",
	"Save",
	"More",
	"Menu",
	"Home",
	"Watch",
	"Groups",
	"Gaming",
	"Your account",
	"Log out",
	"Switch accounts",
	"See all",
	"View more",
	"Show more",
}

var (
	distanceRe     = regexp.MustCompile(`(?i)^\d+\s*(mi|km|miles|kilometers)$`)
	relativeTimeRe = regexp.MustCompile(`(?i)^\d+\s*hours?\s*ago$`)

	// priceRe is the strict currency-number pattern a price candidate must
	// match in full: dollar sign, grouped digits, optional cents.
	priceRe = regexp.MustCompile(`^\$[\d,]+(?:\.\d{2})?$`)

	// priceTokenRe finds price-shaped tokens inside running text.
	priceTokenRe = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
)

// IsUIChrome reports whether text is marketplace UI chrome rather than
// listing content: a denylisted phrase, a price-looking token, a distance
// annotation ("2 mi") or a relative-time annotation ("2 hours ago").
func IsUIChrome(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range uiChromePhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return strings.HasPrefix(text, "$") ||
		strings.Contains(text, "In stock") ||
		strings.Contains(text, "Listed in") ||
		distanceRe.MatchString(text) ||
		relativeTimeRe.MatchString(text)
}

// ValidTitle reports whether text passes the title admission checks:
// inside the length band and not UI chrome.
func ValidTitle(text string) bool {
	return len(text) >= MinTitleLen && len(text) <= MaxTitleLen && !IsUIChrome(text)
}

// ParsePrice returns the numeric value of a strict price string ("$1,299.99").
// ok is false when the text is not a full price token or its value is below
// one dollar; sub-dollar matches are shipping rates and badges, not listing
// prices.
func ParsePrice(text string) (value float64, ok bool) {
	if !priceRe.MatchString(text) {
		return 0, false
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(text)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// FindPriceTokens returns all price-shaped tokens in running text with
// value >= 1, in order of appearance.
func FindPriceTokens(text string) []string {
	matches := priceTokenRe.FindAllString(text, -1)
	var tokens []string
	for _, m := range matches {
		if _, ok := ParsePrice(m); ok {
			tokens = append(tokens, m)
		}
	}
	return tokens
}

// descriptionKeywords mark lines that carry product attributes worth
// keeping even when they are short.
var descriptionKeywords = []string{
	"condition", "details", "size", "color", "model", "brand",
	"msrp", "retail", "new", "used", "original", "box",
	"features", "upgrades", "specifications", "includes",
	"men", "women", "mens", "womens", "men's", "women's",
}

// descriptionNoise is UI text that appears interleaved with listing
// descriptions on unstructured sites.
var descriptionNoise = []string{
	"Facebook",
	"Marketplace",
	"Message seller",
	"Send seller",
	"Share",
	"Save",
	"New notification",
	"Joined Facebook",
	"Hi, is this available",
	"Location is approximate",
	"Seller information",
	"Highly rated",
}

var (
	descDistanceRe = regexp.MustCompile(`(?i)^\d+\s*(mi|km|miles)$`)
	ratingCountRe  = regexp.MustCompile(`^\(\d+\)$`)
)

// IsDescriptionNoise reports whether a visible-text line is UI noise that
// must not enter an assembled description.
func IsDescriptionNoise(line string) bool {
	for _, phrase := range descriptionNoise {
		if strings.Contains(line, phrase) {
			return true
		}
	}
	return strings.HasPrefix(line, "Listed in") ||
		strings.HasPrefix(line, "Listed a") ||
		descDistanceRe.MatchString(line) ||
		ratingCountRe.MatchString(line)
}

// KeepDescriptionLine reports whether a visible-text line belongs in an
// assembled description: it mentions a product attribute, reads like a
// sentence, or is a bullet item.
func KeepDescriptionLine(line string) bool {
	if len(line) < 3 || len(line) > 1000 {
		return false
	}
	lower := strings.ToLower(line)
	for _, keyword := range descriptionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	if len(line) >= 20 && (strings.Contains(line, ".") || strings.Contains(line, ",") || strings.Contains(line, ":")) {
		return true
	}
	return strings.Contains(line, "•") || strings.Contains(line, "–") || strings.HasPrefix(line, "-")
}

// AssembleDescription scans visible-text lines and joins the ones that
// survive the description rules. Lines identical to the already-extracted
// title or price are skipped, as is UI noise.
func AssembleDescription(lines []string, title, price string) string {
	var parts []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line == title || line == price {
			continue
		}
		if IsDescriptionNoise(line) {
			continue
		}
		if KeepDescriptionLine(line) {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, DescriptionDelimiter)
}

// SplitVisibleLines splits visible text into trimmed, non-empty lines.
func SplitVisibleLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
