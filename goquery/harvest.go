package goquery

import (
	"context"
	"strings"

	"github.com/fwojciec/dealscan"
)

// Image admission thresholds and capture parameters.
const (
	// minImageEdge eliminates thumbnails, icons and tracking pixels.
	minImageEdge = 100

	// captureMaxEdge caps the rasterized payload's longest edge.
	captureMaxEdge = 800

	// captureQuality is the JPEG quality for rasterized payloads.
	captureQuality = 0.7
)

// selectImages tries a prioritized list of selectors specific to the
// site's CDN conventions and returns the first non-empty match, falling
// back to every image on the page.
func selectImages(ctx context.Context, doc dealscan.Document, selectors []string) ([]dealscan.PageImage, error) {
	for _, selector := range selectors {
		images, err := doc.Images(ctx, selector)
		if err != nil {
			return nil, err
		}
		if len(images) > 0 {
			return images, nil
		}
	}
	return doc.Images(ctx, "img")
}

// admit applies the image admission filter: a resolvable source, no
// denylisted path substring, and both dimensions at or above minImageEdge.
// Unknown (zero) dimensions are admitted; static documents often omit
// declared sizes and the harvest degrades rather than discards.
func admit(img dealscan.PageImage, excludeSubstrings []string) bool {
	if img.URL == "" {
		return false
	}
	lower := strings.ToLower(img.URL)
	for _, sub := range excludeSubstrings {
		if strings.Contains(lower, sub) {
			return false
		}
	}
	if img.NaturalWidth > 0 && img.NaturalWidth < minImageEdge {
		return false
	}
	if img.NaturalHeight > 0 && img.NaturalHeight < minImageEdge {
		return false
	}
	return true
}

// harvestProxy rasterizes admitted images into inline payloads. Used when
// the image host restricts hotlinking: the downstream inference provider
// could not fetch the URLs itself. A capture failure for one image skips
// that image, never the batch.
func harvestProxy(ctx context.Context, doc dealscan.Document, candidates []dealscan.PageImage, excludes []string, maxCount int) []dealscan.ImageRef {
	var refs []dealscan.ImageRef
	for _, img := range candidates {
		if len(refs) >= maxCount {
			break
		}
		if !admit(img, excludes) {
			continue
		}
		data, err := doc.CaptureImage(ctx, img.URL, captureMaxEdge, captureQuality)
		if err != nil || !strings.HasPrefix(data, "data:image") {
			continue
		}
		refs = append(refs, dealscan.ImageRef{Kind: dealscan.ImageInline, Data: data})
	}
	return refs
}

// harvestDirect keeps admitted images as remote URLs, deduplicated by
// resolved URL after an optional rewrite (e.g. thumbnail path segments
// upgraded to a larger variant). Used when the site serves publicly
// cacheable image URLs.
func harvestDirect(candidates []dealscan.PageImage, excludes []string, rewrite func(string) string, maxCount int) []dealscan.ImageRef {
	seen := make(map[string]bool)
	var refs []dealscan.ImageRef
	for _, img := range candidates {
		if len(refs) >= maxCount {
			break
		}
		if !admit(img, excludes) {
			continue
		}
		u := img.URL
		if rewrite != nil {
			u = rewrite(u)
		}
		if seen[u] {
			continue
		}
		seen[u] = true
		refs = append(refs, dealscan.ImageRef{Kind: dealscan.ImageRemote, URL: u})
	}
	return refs
}

// clampMaxCount applies the listing-wide image cap.
func clampMaxCount(maxCount int) int {
	if maxCount <= 0 || maxCount > dealscan.MaxListingImages {
		return dealscan.MaxListingImages
	}
	return maxCount
}
