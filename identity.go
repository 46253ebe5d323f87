package dealscan

import "context"

// Identifier synthesizes a canonical brand+model identity string from a
// listing. The identity becomes the authoritative query key for all later
// pipeline stages, overriding the raw scraped title.
type Identifier interface {
	// Identify returns a single free-text line naming the exact product.
	// Text (title + description) is the primary signal; up to three
	// images are used for verification only.
	Identify(ctx context.Context, listing *Listing) (string, error)
}
