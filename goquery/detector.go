package goquery

import (
	"net/url"
	"strings"

	"github.com/fwojciec/dealscan"
)

// Ensure Detector implements dealscan.MarketplaceDetector at compile time.
var _ dealscan.MarketplaceDetector = (*Detector)(nil)

// Detector identifies marketplaces by hostname containment. Matching is
// done against the URL's hostname only, never the path, so a listing that
// merely links to another marketplace is not misrouted.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// domainPatterns is checked in fixed priority order.
var domainPatterns = []struct {
	pattern     string
	marketplace dealscan.Marketplace
}{
	{"facebook.com", dealscan.MarketplaceFacebook},
	{"craigslist.org", dealscan.MarketplaceCraigslist},
	{"offerup.com", dealscan.MarketplaceOfferUp},
}

// Detect returns the marketplace for the URL's hostname, or
// MarketplaceUnknown when no known pattern matches. Deterministic given
// the same hostname; side-effect free.
func (d *Detector) Detect(pageURL string) dealscan.Marketplace {
	u, err := url.Parse(pageURL)
	if err != nil {
		return dealscan.MarketplaceUnknown
	}

	hostname := strings.ToLower(u.Hostname())
	for _, p := range domainPatterns {
		if strings.Contains(hostname, p.pattern) {
			return p.marketplace
		}
	}
	return dealscan.MarketplaceUnknown
}
