package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fwojciec/dealscan"
)

// Image budget for the synthesis stage. The first few images carry the
// condition signal; the tail is sent at reduced fidelity.
const (
	MaxAnalysisImages  = 6
	HighFidelityImages = 4
)

// Ensure Analyzer implements dealscan.Analyzer at compile time.
var _ dealscan.Analyzer = (*Analyzer)(nil)

// Analyzer implements dealscan.Analyzer using Google Gemini. It combines
// the listing, the established identity and the live market signals into
// a purchase verdict.
type Analyzer struct {
	client *genai.Client
	images dealscan.ImageLoader
}

// NewAnalyzer creates a new Analyzer. images may be nil, in which case
// synthesis runs on text alone.
func NewAnalyzer(client *genai.Client, images dealscan.ImageLoader) *Analyzer {
	return &Analyzer{client: client, images: images}
}

// Analyze produces the final verdict. Synthesis failure is terminal:
// there is no useful degraded output.
func (a *Analyzer) Analyze(ctx context.Context, req dealscan.AnalysisRequest) (*dealscan.AnalysisResult, error) {
	if req.Listing == nil {
		return nil, dealscan.Errorf(dealscan.EINVALID, "listing required")
	}
	if req.Identity == "" {
		return nil, dealscan.Errorf(dealscan.EINVALID, "product identity required")
	}

	parts := []*genai.Part{{Text: BuildAnalysisPrompt(req)}}

	if a.images != nil {
		for n, ref := range req.Listing.Images {
			if n >= MaxAnalysisImages {
				break
			}
			data, mimeType, err := a.images.Load(ctx, ref, n < HighFidelityImages)
			if err != nil {
				continue
			}
			parts = append(parts, imagePart(data, mimeType))
		}
	}

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: parts}},
		AnalysisConfig(req),
	)
	if err != nil {
		return nil, translateAPIError(err)
	}
	if result == nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "gemini returned nil result")
	}

	return ParseAnalysis(result.Text())
}

// ParseAnalysis locates the JSON object in a free-text response and
// decodes it.
func ParseAnalysis(text string) (*dealscan.AnalysisResult, error) {
	object, err := dealscan.ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}
	var result dealscan.AnalysisResult
	if err := json.Unmarshal([]byte(object), &result); err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "invalid analysis response: %v", err)
	}
	return &result, nil
}

// AnalysisConfig returns the GenerateContentConfig for synthesis calls.
// When live market signals are present, the system prompt pins the
// corresponding result fields so the model cannot hallucinate past them.
func AnalysisConfig(req dealscan.AnalysisRequest) *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: buildAnalysisSystemPrompt(req)}},
		},
		Temperature: &temp,
	}
}

func buildAnalysisSystemPrompt(req dealscan.AnalysisRequest) string {
	usedSource := "eBay sold listings, OfferUp, FB Marketplace comps"
	if req.Used != nil {
		usedSource = "LIVE market data provided"
	}
	retailPrice := "typical new retail"
	retailLink := ""
	if req.Retail != nil {
		retailPrice = req.Retail.Price
		retailLink = req.Retail.Link
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `You are my real-time marketplace deal analyzer with expert knowledge of secondary markets.

TONE: Casual but professional. Be direct and honest.

ANALYSIS METHODOLOGY:

1. IDENTIFY THE ITEM
- Recognize exact product, model, brand, version/generation
- Make educated guesses from visual cues if unclear

2. ESTABLISH REAL-WORLD VALUE
Use this repeatable process:
a) Retail price (new) - typical MSRP
b) Used-market average - based on %s
c) Condition adjustments - missing parts, cosmetic wear, upgrades, packaging
d) Category depreciation baselines:
   - Tools: 50-70%% of retail
   - Apparel: 30-50%% of retail
   - Premium brands (Arc'teryx, Patagonia, North Face): 60-80%% of retail
   - Electronics: 40-70%% of retail
   - Furniture (IKEA): 20-40%% of retail
   - Furniture (premium brands): 40-60%% of retail

3. PRICE RATING TIERS
- Home Run Deal: 50%%+ below average used value OR can flip for 2x profit
- Strong Deal: 30-40%% below used market value
- Fair Deal: Within 10-20%% of typical used market
- Overpriced: Above average used value or condition doesn't justify price

4. NEGOTIATION STRATEGY
Provide three price points:
- Ideal offer (lowball but reasonable)
- Realistic accepted offer (likely to close deal)
- Max to pay (walk-away price)

NEGOTIATION MESSAGE RULES:
- If verdict is "Home Run" → Express interest WITHOUT asking for lower price (it's already a great deal)
- If verdict is "Strong Deal" or "Fair Deal" → Suggest a lower offer price
- If verdict is "Overpriced" → Suggest a much lower price or point out issues
- Keep message casual, 1 sentence, no greetings

5. IMAGES ANALYSIS
Carefully inspect all product images for:
- Scratches, dents, chips, cracks, wear patterns, fading
- Missing parts, broken components, dirt, stains
- Overall condition vs seller's description

Return ONLY a JSON object:
{
  "verdict": "Home Run, Strong Deal, Fair Deal, or Overpriced",
  "exactProduct": "Brand + Model + Version",
  "askingPrice": "exact asking price",
  "newRetailPrice": "%s",
  "newRetailLink": "%s",
  "usedMarketAverage": "typical used market price",
  "idealOffer": "your lowball offer",
  "realisticOffer": "likely accepted offer",
  "maxToPay": "walk-away price",
  "estimatedProfit": "flip profit after 10-15%% fees",
  "pros": "Why it's a deal (1 sentence)",
  "cons": "SPECIFIC defects from images or risks (1 sentence)",
  "finalVerdict": "Buy, Negotiate, Skip, or Flip",
  "message": "casual negotiation message - if Home Run, express interest without lowballing; otherwise suggest lower offer"
}

CRITICAL RULES:
- Be honest if the deal isn't good
- Account for actual condition from images
- Use category-specific depreciation rules
- Flip profit = (resale price - purchase price - 12.5%% fees)`, usedSource, retailPrice, retailLink)

	if req.Retail != nil {
		fmt.Fprintf(&sb, "\n- newRetailPrice MUST be exactly %q", req.Retail.Price)
		fmt.Fprintf(&sb, "\n- newRetailLink MUST be exactly %q", req.Retail.Link)
	}
	if req.Used != nil {
		sb.WriteString("\n- PRIORITIZE live market data provided - these are REAL current prices")
	}
	return sb.String()
}

// BuildAnalysisPrompt builds the user prompt for synthesis: the listing
// text, the established identity, and the live market signals.
func BuildAnalysisPrompt(req dealscan.AnalysisRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\nPrice: %s\nDescription: %s\n\nProduct: %s",
		orNA(req.Listing.Title),
		orNA(req.Listing.Price),
		orNA(req.Listing.Description),
		req.Identity,
	)

	if req.Retail != nil {
		fmt.Fprintf(&sb, "\n\nNEW RETAIL PRICE (verified live search):\n%s - %s (%s)\nLink: %s",
			req.Retail.Price, req.Retail.Title, req.Retail.Source, req.Retail.Link)
	}

	if req.Used != nil && len(req.Used.Items) > 0 {
		sb.WriteString("\n\nUSED MARKET PRICES (today):\n")
		for n, item := range req.Used.Items {
			if n >= 10 {
				break
			}
			fmt.Fprintf(&sb, "%d. %s - %s\n", n+1, item.Title, item.Price)
		}
	}

	imageCount := len(req.Listing.Images)
	if imageCount > MaxAnalysisImages {
		imageCount = MaxAnalysisImages
	}
	if imageCount > 0 {
		fmt.Fprintf(&sb, "\n\nANALYZE THE %d PRODUCT IMAGES BELOW:\nLook for scratches, wear, damage, condition issues. Report SPECIFIC defects you see.", imageCount)
	} else {
		sb.WriteString("\n\nNO IMAGES PROVIDED - assess based on description only.")
	}
	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
