package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png" // remote listing photos are occasionally PNG
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/dealscan"
)

// DefaultImageTimeout is the default timeout for remote image fetches.
const DefaultImageTimeout = 10 * time.Second

// lowFidelityQuality is the JPEG quality used when a caller asks for a
// reduced-fidelity payload. Condition details survive; token cost drops.
const lowFidelityQuality = 40

// maxImageBytes caps a remote image download.
const maxImageBytes = 8 << 20

// Ensure ImageLoader implements dealscan.ImageLoader at compile time.
var _ dealscan.ImageLoader = (*ImageLoader)(nil)

// ImageLoader materializes image refs for inference requests: inline
// refs decode their data URL, remote refs are fetched over HTTP.
type ImageLoader struct {
	timeout time.Duration
	client  *http.Client
}

// ImageOption configures an ImageLoader.
type ImageOption func(*ImageLoader)

// WithImageTimeout sets the timeout for remote fetches.
// Defaults to DefaultImageTimeout.
func WithImageTimeout(d time.Duration) ImageOption {
	return func(l *ImageLoader) {
		l.timeout = d
	}
}

// NewImageLoader creates a new ImageLoader.
func NewImageLoader(opts ...ImageOption) *ImageLoader {
	l := &ImageLoader{
		timeout: DefaultImageTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.client = &http.Client{
		Timeout: l.timeout,
	}

	return l
}

// Load returns the image bytes and MIME type for a ref. When highFidelity
// is false the image is re-encoded at reduced JPEG quality; an image that
// cannot be decoded passes through unchanged.
func (l *ImageLoader) Load(ctx context.Context, ref dealscan.ImageRef, highFidelity bool) ([]byte, string, error) {
	var (
		data     []byte
		mimeType string
		err      error
	)

	switch ref.Kind {
	case dealscan.ImageInline:
		data, mimeType, err = decodeDataURL(ref.Data)
	case dealscan.ImageRemote:
		data, mimeType, err = l.fetch(ctx, ref.URL)
	default:
		return nil, "", dealscan.Errorf(dealscan.EINVALID, "unknown image kind %q", ref.Kind)
	}
	if err != nil {
		return nil, "", err
	}

	if !highFidelity {
		if reduced, ok := reencode(data); ok {
			return reduced, "image/jpeg", nil
		}
	}
	return data, mimeType, nil
}

func (l *ImageLoader) fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", dealscan.Errorf(dealscan.EINTERNAL, "image fetch returned HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
		mimeType = sniffMIME(data)
	}
	return data, mimeType, nil
}

// decodeDataURL splits a "data:image/jpeg;base64,..." payload into bytes
// and MIME type.
func decodeDataURL(dataURL string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, "", dealscan.Errorf(dealscan.EINVALID, "not a data URL")
	}
	meta, encoded, ok := strings.Cut(dataURL[len("data:"):], ",")
	if !ok {
		return nil, "", dealscan.Errorf(dealscan.EINVALID, "malformed data URL")
	}

	mimeType, _, _ := strings.Cut(meta, ";")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", dealscan.Errorf(dealscan.EINVALID, "invalid data URL payload: %v", err)
	}
	return data, mimeType, nil
}

// reencode decodes the image and re-encodes it as a reduced-quality JPEG.
// ok is false when the bytes are not a decodable image.
func reencode(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: lowFidelityQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func sniffMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")):
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "image/gif"
	case len(data) > 11 && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
