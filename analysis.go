package dealscan

import "context"

// Verdict tiers, by discount from used-market value.
const (
	VerdictHomeRun    = "Home Run"
	VerdictStrongDeal = "Strong Deal"
	VerdictFairDeal   = "Fair Deal"
	VerdictOverpriced = "Overpriced"
)

// Final actions.
const (
	ActionBuy       = "Buy"
	ActionNegotiate = "Negotiate"
	ActionSkip      = "Skip"
	ActionFlip      = "Flip"
)

// AnalysisResult is the synthesized verdict for a listing. All fields are
// optional; consumers render conditionally on non-empty values.
type AnalysisResult struct {
	Verdict           string `json:"verdict"`
	ExactProduct      string `json:"exactProduct"`
	AskingPrice       string `json:"askingPrice"`
	NewRetailPrice    string `json:"newRetailPrice"`
	NewRetailLink     string `json:"newRetailLink"`
	UsedMarketAverage string `json:"usedMarketAverage"`
	IdealOffer        string `json:"idealOffer"`
	RealisticOffer    string `json:"realisticOffer"`
	MaxToPay          string `json:"maxToPay"`
	EstimatedProfit   string `json:"estimatedProfit"`
	Pros              string `json:"pros"`
	Cons              string `json:"cons"`
	FinalVerdict      string `json:"finalVerdict"`
	Message           string `json:"message"`
}

// AnalysisRequest carries everything the synthesis stage combines into a
// verdict: the listing, the established identity, and whatever market
// signals the lookups produced (either may be nil).
type AnalysisRequest struct {
	Listing  *Listing
	Identity string
	Retail   *RetailSignal
	Used     *UsedMarket
}

// Analyzer produces the final purchase verdict. Unlike the earlier
// pipeline stages, synthesis failure is terminal: there is no useful
// degraded output.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
}

// ExtractJSONObject returns the first balanced brace-delimited substring of
// text. The inference providers embed the result object somewhere in a
// free-text response, so the object must be located by brace matching, not
// assumed to be the entire payload. String literals and escapes inside the
// object are honored. Returns EINTERNAL when no balanced object exists.
func ExtractJSONObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start == -1 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", Errorf(EINTERNAL, "no JSON object found in response")
}
