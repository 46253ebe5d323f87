package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fwojciec/dealscan"
)

// MaxIdentifyImages caps the images sent for identity verification. Text
// is the primary signal; a few images are enough to confirm it.
const MaxIdentifyImages = 3

// Ensure Identifier implements dealscan.Identifier at compile time.
var _ dealscan.Identifier = (*Identifier)(nil)

// Identifier implements dealscan.Identifier using Google Gemini.
type Identifier struct {
	client *genai.Client
	images dealscan.ImageLoader
}

// NewIdentifier creates a new Identifier. images may be nil, in which
// case identification runs on text alone.
func NewIdentifier(client *genai.Client, images dealscan.ImageLoader) *Identifier {
	return &Identifier{client: client, images: images}
}

// Identify synthesizes the canonical brand+model identity for a listing.
func (i *Identifier) Identify(ctx context.Context, listing *dealscan.Listing) (string, error) {
	if listing == nil {
		return "", dealscan.Errorf(dealscan.EINVALID, "listing required")
	}
	if listing.Title == "" && listing.Description == "" {
		return "", dealscan.Errorf(dealscan.EINVALID, "listing text required for identification")
	}

	parts := []*genai.Part{{Text: BuildIdentifyPrompt(listing)}}

	attached := 0
	if i.images != nil {
		for _, ref := range listing.Images {
			if attached >= MaxIdentifyImages {
				break
			}
			// Low fidelity is enough for verification.
			data, mimeType, err := i.images.Load(ctx, ref, false)
			if err != nil {
				continue
			}
			parts = append(parts, imagePart(data, mimeType))
			attached++
		}
	}
	if attached > 0 {
		parts = append(parts, &genai.Part{
			Text: "Images provided above. Use them to verify/confirm the product identification from the text, but prioritize the text description.",
		})
	}

	result, err := i.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: parts}},
		IdentifyConfig(),
	)
	if err != nil {
		return "", translateAPIError(err)
	}
	if result == nil {
		return "", dealscan.Errorf(dealscan.EINTERNAL, "gemini returned nil result")
	}

	identity := strings.TrimSpace(result.Text())
	if identity == "" {
		return "", dealscan.Errorf(dealscan.EINTERNAL, "gemini returned empty identification")
	}
	return identity, nil
}

// IdentifyConfig returns the GenerateContentConfig for identification
// calls. The low temperature keeps extraction precise.
func IdentifyConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: identifySystemPrompt}},
		},
		Temperature: &temp,
	}
}

const identifySystemPrompt = `You are a product identification expert. Your job is to extract the EXACT product name from listing data.

CRITICAL INSTRUCTIONS:
1. ANALYZE THE TEXT FIRST (title + description) - this is the PRIMARY source
2. Extract the complete product name including:
   - Brand name (e.g., "North Face", "IKEA", "Herman Miller")
   - Model name (e.g., "Antora", "Mörbylånga", "Aeron")
   - Important variants (e.g., "Men's", "Women's", specific color, size if part of the model name)
3. DO NOT add generic descriptions like "Jacket" or "Chair" unless they're part of the official product name
4. If images are provided, use them to VERIFY the text-based identification (not as primary source)

OUTPUT FORMAT: Brand + Model + Variant (if applicable)

Examples:
- Good: "North Face Men's Antora Waterproof Jacket"
- Good: "Herman Miller Aeron Chair"
- Good: "IKEA Mörbylånga Table"
- Bad: "North Face Jacket" (too vague)
- Bad: "Blue chair" (no brand/model)`

// BuildIdentifyPrompt builds the user prompt for identification. The
// listing text leads; image parts follow separately.
func BuildIdentifyPrompt(listing *dealscan.Listing) string {
	var sb strings.Builder
	sb.WriteString("LISTING INFORMATION (analyze this first):\n\n")
	fmt.Fprintf(&sb, "Title: %s\n\n", orNotProvided(listing.Title))
	fmt.Fprintf(&sb, "Description: %s\n\n", orNotProvided(listing.Description))
	sb.WriteString("Task: Extract the exact brand and model name from the text above. Include all relevant details (Men's/Women's, specific model variants, etc.).")
	return sb.String()
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
