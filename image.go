package dealscan

import "context"

// ImageLoader materializes an ImageRef into raw bytes for inference
// requests. Inline refs decode their data URL; remote refs are fetched.
type ImageLoader interface {
	// Load returns the image bytes and MIME type. When highFidelity is
	// false the image is re-encoded at reduced JPEG quality to save
	// inference tokens.
	Load(ctx context.Context, ref ImageRef, highFidelity bool) (data []byte, mimeType string, err error)
}
