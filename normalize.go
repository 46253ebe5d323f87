package dealscan

import (
	"net/url"
	"regexp"
	"strings"
)

// spamTokens are listing-spam phrases removed from titles before they are
// used as search queries. Matching is case-insensitive on word boundaries.
var spamTokens = []string{
	"L@@K", "LOOK", "WOW", "RARE", "CHEAP", "MUST SEE", "NR", "NO RESERVE",
	"FREE SHIPPING", "BRAND NEW", "MINT", "HTF", "VHTF", "HOLY GRAIL",
}

var (
	// Emoji and symbol ranges commonly decorating marketplace titles.
	emojiRe = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}]`)

	punctuationRe = regexp.MustCompile(`[!@#$%^&*()_+=\[\]{};':"\\|,.<>?]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	spamTokenRes = compileSpamTokens()
)

func compileSpamTokens() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(spamTokens))
	for _, token := range spamTokens {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(token)+`\b`))
	}
	return res
}

// NormalizeQuery turns an arbitrary listing title into a clean search query
// term: emoji stripped, spam tokens removed, punctuation collapsed to
// whitespace, whitespace collapsed, trimmed. Deterministic, total and
// idempotent.
func NormalizeQuery(text string) string {
	cleaned := emojiRe.ReplaceAllString(text, "")
	for _, re := range spamTokenRes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = punctuationRe.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// SoldCompsURL builds an eBay sold-listings search URL for the auxiliary
// comps action, normalizing the query term first.
func SoldCompsURL(query string) string {
	v := url.Values{}
	v.Set("_nkw", NormalizeQuery(query))
	v.Set("_sacat", "0")
	v.Set("LH_Sold", "1")
	v.Set("LH_Complete", "1")
	v.Set("_sop", "15")
	return "https://www.ebay.com/sch/i.html?" + v.Encode()
}
